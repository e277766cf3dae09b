package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger descartável até Init ser chamado, para que pacotes usados em testes
// possam logar sem inicialização explícita.
var sugar = zap.NewNop().Sugar()

// Init inicializa o zap logger.
func Init(level, format, outputPath string) {
	var err error
	var logger *zap.Logger
	var zapConfig zap.Config

	// Nível de log conforme configuração
	logLevel := zap.NewAtomicLevel()
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel.SetLevel(zap.InfoLevel)
	}

	// Formato de saída conforme configuração
	encoding := "json"
	if format == "console" {
		encoding = "console"
	}

	if format == "console" {
		// Configuração de desenvolvimento
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		// Configuração de produção
		zapConfig = zap.NewProductionConfig()
	}

	zapConfig.Level = logLevel
	zapConfig.Encoding = encoding
	zapConfig.OutputPaths = []string{"stdout"}
	if outputPath != "" {
		// Com caminho de arquivo configurado, escreve no arquivo e no stdout
		_ = os.MkdirAll(outputPath, os.ModePerm)
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, outputPath+"/app.log")
	}

	logger, err = zapConfig.Build()
	if err != nil {
		panic(err)
	}

	sugar = logger.Sugar()
}

// Logger expõe o *zap.Logger subjacente para integrações (ex.: gorm).
func Logger() *zap.Logger {
	return sugar.Desugar()
}

// Info registra uma mensagem de nível info.
func Info(msg string) {
	sugar.Info(msg)
}

// Infof registra uma mensagem de nível info com formatação.
func Infof(template string, args ...interface{}) {
	sugar.Infof(template, args...)
}

// Infow registra uma mensagem estruturada de nível info com pares chave-valor.
// É o método preferido para contexto complexo.
func Infow(msg string, keysAndValues ...interface{}) {
	sugar.Infow(msg, keysAndValues...)
}

// Warnf registra uma mensagem de nível warn com formatação.
func Warnf(template string, args ...interface{}) {
	sugar.Warnf(template, args...)
}

// Error registra uma mensagem de nível error com o erro anexado.
func Error(msg string, err error) {
	sugar.Errorw(msg, "error", err)
}

// Fatal registra uma mensagem de nível fatal com o erro anexado e encerra o processo.
func Fatal(msg string, err error) {
	sugar.Fatalw(msg, "error", err)
}

func Fatalf(template string, args ...interface{}) {
	sugar.Fatalf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	sugar.Errorf(template, args...)
}

// Sync descarrega qualquer log ainda em buffer para o Writer subjacente.
// Deve ser chamado antes de encerrar o processo.
func Sync() {
	_ = sugar.Sync()
}
