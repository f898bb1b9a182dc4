package store

import (
	"context"

	"jamaluki-backend/models"
)

// DefaultCategories is the taxonomy installed into an empty catalog.
var DefaultCategories = []models.ServiceCategory{
	{Name: "قص الشعر", NameEn: "Haircut", Icon: "content_cut"},
	{Name: "العناية بالبشرة", NameEn: "Skincare", Icon: "spa"},
	{Name: "مكياج", NameEn: "Makeup", Icon: "brush"},
	{Name: "حناء", NameEn: "Henna", Icon: "palette"},
}

// SeedServiceCategories installs DefaultCategories when no category exists
// and returns how many were created.
func SeedServiceCategories(ctx context.Context, s Store) (int, error) {
	created := 0
	err := s.WithTx(ctx, func(tx Store) error {
		existing, err := tx.ListServiceCategories(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
		for _, c := range DefaultCategories {
			category := c
			if err := tx.CreateServiceCategory(ctx, &category); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
