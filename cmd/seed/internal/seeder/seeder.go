// Package seeder fills a fresh deployment with demo categories, dishes and
// couriers through the public gateway API.
package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/schollz/progressbar/v3"
)

const requestIDHeader = "X-Request-ID"

var (
	DefaultCategories = []string{"Starters", "Soups", "Mains", "Grill", "Desserts", "Drinks"}

	cuisines = []string{"Tuscan", "Smoked", "Crispy", "Spicy", "Garden", "Braised", "Charred", "Glazed"}
	vehicles = []string{"bike", "scooter", "car"}
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	Gateway    string
	Categories []string
	Dishes     int
	Couriers   int
	Seed       int64
	// Progress receives the bar; nil hides it.
	Progress io.Writer
}

type Result struct {
	RunID      string `json:"run_id"`
	Categories int    `json:"categories"`
	Dishes     int    `json:"dishes"`
	Couriers   int    `json:"couriers"`
}

type Seeder struct {
	client HTTPClient
	opts   Options
	fake   faker.Faker
	log    *slog.Logger
	runID  string
	seq    int
}

func New(client HTTPClient, opts Options, log *slog.Logger) *Seeder {
	if len(opts.Categories) == 0 {
		opts.Categories = DefaultCategories
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	opts.Gateway = strings.TrimRight(opts.Gateway, "/")
	return &Seeder{
		client: client,
		opts:   opts,
		fake:   faker.NewWithSeed(rand.NewSource(opts.Seed)),
		log:    log,
		runID:  cuid.New(),
	}
}

type created struct {
	ID int `json:"id"`
}

// Run creates every category first, then dishes spread over them, then
// couriers. The first failing request stops the run.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	res := Result{RunID: s.runID}
	total := len(s.opts.Categories) + s.opts.Dishes + s.opts.Couriers
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(s.opts.Progress),
		progressbar.OptionSetDescription("seeding"),
		progressbar.OptionShowCount(),
	)
	defer bar.Finish()

	s.log.Info("seed started", "run_id", s.runID, "gateway", s.opts.Gateway, "total", total)

	categoryIDs := make([]int, 0, len(s.opts.Categories))
	for _, name := range s.opts.Categories {
		var c created
		if err := s.post(ctx, "/api/categories", s.category(name), &c); err != nil {
			return res, fmt.Errorf("category %q: %w", name, err)
		}
		categoryIDs = append(categoryIDs, c.ID)
		res.Categories++
		bar.Add(1)
	}

	for i := 0; i < s.opts.Dishes; i++ {
		categoryID := categoryIDs[s.fake.IntBetween(0, len(categoryIDs)-1)]
		if err := s.post(ctx, "/api/dishes", s.dish(categoryID), nil); err != nil {
			return res, fmt.Errorf("dish %d: %w", i+1, err)
		}
		res.Dishes++
		bar.Add(1)
	}

	for i := 0; i < s.opts.Couriers; i++ {
		if err := s.post(ctx, "/api/couriers", s.courier(), nil); err != nil {
			return res, fmt.Errorf("courier %d: %w", i+1, err)
		}
		res.Couriers++
		bar.Add(1)
	}

	s.log.Info("seed finished", "run_id", s.runID,
		"categories", res.Categories, "dishes", res.Dishes, "couriers", res.Couriers)
	return res, nil
}

func (s *Seeder) category(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"description": s.fake.Lorem().Sentence(8),
		"active":      true,
	}
}

func (s *Seeder) dish(categoryID int) map[string]interface{} {
	ingredients := make([]string, s.fake.IntBetween(2, 5))
	for i := range ingredients {
		ingredients[i] = s.fake.Lorem().Word()
	}
	name := s.fake.RandomStringElement(cuisines) + " " + s.fake.Lorem().Word()
	return map[string]interface{}{
		"name":             name,
		"description":      s.fake.Lorem().Sentence(12),
		"price":            s.fake.Float64(2, 4, 35),
		"category_id":      categoryID,
		"active":           true,
		"preparation_time": s.fake.IntBetween(5, 45),
		"ingredients":      ingredients,
	}
}

func (s *Seeder) courier() map[string]interface{} {
	return map[string]interface{}{
		"name":    s.fake.Person().Name(),
		"phone":   s.fake.Phone().Number(),
		"vehicle": s.fake.RandomStringElement(vehicles),
		"active":  true,
	}
}

func (s *Seeder) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.opts.Gateway+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	s.seq++
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, fmt.Sprintf("%s-%d", s.runID, s.seq))

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("POST %s: decode response: %w", path, err)
		}
	}
	return nil
}
