package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SandeDesign/alloon-sub000/internal/domain/company"
	"github.com/SandeDesign/alloon-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, username, address, logo_url, chamber_of_commerce_no, tax_number, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var comp company.Company
	err := q.QueryRow(ctx, query, id).Scan(
		&comp.ID, &comp.Name, &comp.Username, &comp.Address, &comp.LogoURL,
		&comp.ChamberOfCommerceNo, &comp.TaxNumber, &comp.CreatedAt, &comp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company with id %s: %w", id, err)
	}

	return comp, nil
}
