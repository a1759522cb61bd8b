package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// RegistryService answers the cross-table uniqueness questions the
// registration and profile-edit screens ask: is this email or phone already
// taken by any kind of account?
type RegistryService struct {
	db *gorm.DB
}

func NewRegistryService(db *gorm.DB) *RegistryService {
	return &RegistryService{db: db}
}

// accountTable pairs each account table with its primary-key column, needed
// by the "except the caller itself" variants.
type accountTable struct {
	name     string
	idColumn string
}

var accountTables = []accountTable{
	{"entidadReceptora", "entidadID"},
	{"alumno", "numControl"},
	{"asesorInterno", "asesorInternoID"},
	{"asesorExterno", "asesorExternoID"},
	{"administrador", "adminID"},
}

// EmailInUse reports whether correo exists in any account table.
func (s *RegistryService) EmailInUse(ctx context.Context, correo string) (bool, error) {
	return s.contactInUse(ctx, "correo", correo, "")
}

// EmailInUseExcluding is EmailInUse ignoring the account identified by
// excludeID, so a user editing their profile does not collide with themselves.
func (s *RegistryService) EmailInUseExcluding(ctx context.Context, correo, excludeID string) (bool, error) {
	return s.contactInUse(ctx, "correo", correo, excludeID)
}

// PhoneInUse reports whether numCelular exists in any account table.
func (s *RegistryService) PhoneInUse(ctx context.Context, numCelular string) (bool, error) {
	return s.contactInUse(ctx, "numCelular", numCelular, "")
}

// PhoneInUseExcluding is PhoneInUse ignoring the account identified by excludeID.
func (s *RegistryService) PhoneInUseExcluding(ctx context.Context, numCelular, excludeID string) (bool, error) {
	return s.contactInUse(ctx, "numCelular", numCelular, excludeID)
}

func (s *RegistryService) contactInUse(ctx context.Context, column, value, excludeID string) (bool, error) {
	if value == "" {
		return false, nil
	}
	for _, t := range accountTables {
		// Bare table name; GORM quotes it, which preserves the camelCase.
		query := s.db.WithContext(ctx).
			Table(t.name).
			Where(fmt.Sprintf("%q = ?", column), value)
		if excludeID != "" {
			// Ids are strings for alumno and integers elsewhere; compare as
			// text so one helper serves every table.
			query = query.Where(fmt.Sprintf("CAST(%q AS TEXT) <> ?", t.idColumn), excludeID)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return false, fmt.Errorf("check %s in %s: %w", column, t.name, err)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}
