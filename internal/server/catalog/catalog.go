// Package catalog reads the bundled reference datasets (foods and yoga
// poses) from a data directory. Files are read on every call so edits are
// picked up without a restart.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/nutricare/internal/common"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
)

const (
	NutritionFile = "nutrition.json"
	YogaFile      = "yoga.json"
)

type nutritionDoc struct {
	Foods []models.NutritionFact `json:"foods"`
}

// Catalog serves the JSON datasets found in dir.
type Catalog struct {
	dir string
}

func New(dir string) *Catalog {
	return &Catalog{dir: dir}
}

func (c *Catalog) load(name string, v any) error {
	b, err := os.ReadFile(filepath.Join(c.dir, name))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrDataSourceUnavailable, name, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrDataSourceUnavailable, name, err)
	}
	return nil
}

// Foods returns the whole food list.
func (c *Catalog) Foods() ([]models.NutritionFact, error) {
	var doc nutritionDoc
	if err := c.load(NutritionFile, &doc); err != nil {
		return nil, err
	}
	return doc.Foods, nil
}

// SearchFoods matches query against food names in two passes: first any
// name containing the query (case-insensitive); when that finds nothing,
// any name sharing a whole word with the query. An empty result is
// common.ErrNoNutritionData.
func (c *Catalog) SearchFoods(query string) ([]models.NutritionFact, error) {
	foods, err := c.Foods()
	if err != nil {
		return nil, err
	}

	res := Match(foods, query)
	if len(res) == 0 {
		return nil, common.ErrNoNutritionData
	}
	return res, nil
}

// Match applies the two-pass name match to foods.
func Match(foods []models.NutritionFact, query string) []models.NutritionFact {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var res []models.NutritionFact
	for _, f := range foods {
		if strings.Contains(strings.ToLower(f.Name), q) {
			res = append(res, f)
		}
	}
	if len(res) > 0 {
		return res
	}

	words := strings.Fields(q)
	for _, f := range foods {
		for _, nw := range strings.Fields(strings.ToLower(f.Name)) {
			if contains(words, nw) {
				res = append(res, f)
				break
			}
		}
	}
	return res
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// YogaPoses returns the yoga dataset as stored on disk.
func (c *Catalog) YogaPoses() (*models.YogaCatalog, error) {
	doc := &models.YogaCatalog{}
	if err := c.load(YogaFile, doc); err != nil {
		return nil, err
	}
	if doc.Poses == nil {
		doc.Poses = []models.YogaPose{}
	}
	return doc, nil
}
