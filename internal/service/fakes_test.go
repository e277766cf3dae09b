package service

import (
	"context"
	"io"

	"gorm.io/gorm"

	"github.com/renanbrackmann-glitch/modelfinder/internal/model"
)

// Dublês compartilhados pelos testes de serviço.

type fakeModeloRepo struct {
	modelos      []model.Modelo
	upserted     []model.Modelo
	conteudos    map[string]string
	existentes   map[string]bool
	tagsPorID    map[uint][]string
	resetados    []uint
	findAllErr   error
	idConhecidos map[uint]bool
}

func (f *fakeModeloRepo) UpsertAll(modelos []model.Modelo) (int, error) {
	f.upserted = append(f.upserted, modelos...)
	return len(modelos), nil
}

func (f *fakeModeloRepo) FindAll() ([]model.Modelo, error) {
	if f.findAllErr != nil {
		return nil, f.findAllErr
	}
	return f.modelos, nil
}

func (f *fakeModeloRepo) FindByID(id uint) (*model.Modelo, error) {
	for i := range f.modelos {
		if f.modelos[i].ID == id {
			return &f.modelos[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeModeloRepo) FindByEprocID(eprocID string) (*model.Modelo, error) {
	for i := range f.modelos {
		if f.modelos[i].EprocID == eprocID {
			return &f.modelos[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeModeloRepo) UpdateContent(eprocID, conteudo string) (bool, error) {
	if f.conteudos == nil {
		f.conteudos = make(map[string]string)
	}
	if !f.existentes[eprocID] {
		return false, nil
	}
	f.conteudos[eprocID] = conteudo
	return true, nil
}

func (f *fakeModeloRepo) UpdateTags(id uint, tags []string) (bool, error) {
	if !f.idConhecidos[id] {
		return false, nil
	}
	if f.tagsPorID == nil {
		f.tagsPorID = make(map[uint][]string)
	}
	f.tagsPorID[id] = tags
	return true, nil
}

func (f *fakeModeloRepo) ResetTags(id uint) (bool, error) {
	if !f.idConhecidos[id] {
		return false, nil
	}
	f.resetados = append(f.resetados, id)
	return true, nil
}

type fakeSettingRepo struct {
	valores map[string]string
}

func (f *fakeSettingRepo) Get(key string) (string, error) {
	return f.valores[key], nil
}

func (f *fakeSettingRepo) Set(key, value string) error {
	if f.valores == nil {
		f.valores = make(map[string]string)
	}
	f.valores[key] = value
	return nil
}

type fakePageGroupRepo struct {
	grupos []model.PageGroup
}

func (f *fakePageGroupRepo) FindAll() ([]model.PageGroup, error) {
	return f.grupos, nil
}

func (f *fakePageGroupRepo) ReplaceAll(grupos []model.PageGroup) error {
	f.grupos = grupos
	return nil
}

type fakeExtractor struct {
	texto string
	err   error
}

func (f *fakeExtractor) ExtractText(ctx context.Context, fileReader io.Reader, fileName string) (string, error) {
	return f.texto, f.err
}

type fakeLLM struct {
	resposta string
	err      error
	prompt   string
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.resposta, f.err
}
