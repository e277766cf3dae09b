package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/renanbrackmann-glitch/modelfinder/internal/model"
	"github.com/renanbrackmann-glitch/modelfinder/internal/repository"
	"github.com/renanbrackmann-glitch/modelfinder/pkg/log"
)

// Chave de app_settings onde fica o hash bcrypt da senha de administrador.
const settingSenhaAdminHash = "admin_password_hash"

const minCaracteresSenha = 6

// AdminService cobre a verificação da credencial compartilhada de
// administração, sua rotação e a configuração dos grupos de páginas.
type AdminService interface {
	// VerificarSenha compara a senha informada com a credencial vigente.
	// Retorna ErrSenhaIncorreta quando não confere.
	VerificarSenha(ctx context.Context, senha string) error
	// AlterarSenha grava o hash de uma nova senha, exigindo ao menos 6
	// caracteres. A verificação da senha vigente cabe ao chamador.
	AlterarSenha(ctx context.Context, novaSenha string) error
	ListarGrupos(ctx context.Context) ([]model.PageGroup, error)
	SalvarGrupos(ctx context.Context, grupos []model.PageGroup) error
}

type adminService struct {
	settingRepo   repository.SettingRepository
	pageGroupRepo repository.PageGroupRepository
	senhaPadrao   string
}

// NewAdminService cria um AdminService. senhaPadrao é a credencial inicial da
// configuração, usada apenas enquanto nenhuma senha foi gravada no banco.
func NewAdminService(settingRepo repository.SettingRepository, pageGroupRepo repository.PageGroupRepository, senhaPadrao string) AdminService {
	return &adminService{
		settingRepo:   settingRepo,
		pageGroupRepo: pageGroupRepo,
		senhaPadrao:   senhaPadrao,
	}
}

func (s *adminService) VerificarSenha(ctx context.Context, senha string) error {
	hash, err := s.settingRepo.Get(settingSenhaAdminHash)
	if err != nil {
		return err
	}

	if hash == "" {
		// Nenhuma senha gravada ainda: vale a credencial padrão da
		// configuração, comparada em tempo constante.
		esperado := sha256.Sum256([]byte(s.senhaPadrao))
		recebido := sha256.Sum256([]byte(senha))
		if subtle.ConstantTimeCompare(esperado[:], recebido[:]) != 1 {
			return ErrSenhaIncorreta
		}
		return nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrSenhaIncorreta
		}
		return err
	}
	return nil
}

func (s *adminService) AlterarSenha(ctx context.Context, novaSenha string) error {
	if utf8.RuneCountInString(novaSenha) < minCaracteresSenha {
		return ErrSenhaFraca
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(novaSenha), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.settingRepo.Set(settingSenhaAdminHash, string(hash)); err != nil {
		return err
	}

	log.Infof("[AdminService] senha de administrador rotacionada")
	return nil
}

func (s *adminService) ListarGrupos(ctx context.Context) ([]model.PageGroup, error) {
	return s.pageGroupRepo.FindAll()
}

func (s *adminService) SalvarGrupos(ctx context.Context, grupos []model.PageGroup) error {
	return s.pageGroupRepo.ReplaceAll(grupos)
}
