package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ecomm/internal/config"
	"ecomm/internal/db"
	"ecomm/internal/logger"
	"ecomm/internal/model"
	"ecomm/internal/repository"
	"ecomm/internal/service"
	"ecomm/internal/validation"
)

// defaultCatalog is seeded when no -source is given.
const defaultCatalog = `{
  "products": [
    {"name": "Ballpoint Pen", "price": 1.50, "type": "office"},
    {"name": "Notebook A5", "price": 3.25, "type": "office"},
    {"name": "Desk Lamp", "price": 24.90, "type": "home", "image_url": "https://img.example.com/lamp.png"},
    {"name": "Coffee Mug", "price": 7.00, "type": "home"},
    {"name": "USB-C Cable", "price": 9.99, "type": "electronics"}
  ],
  "customers": [
    {
      "name": "Demo Customer",
      "email": "demo@example.com",
      "phone": "5550100",
      "account": {"username": "demo", "email": "demo@example.com", "password": "demo-password"}
    }
  ]
}`

// seedData is the layout of a seed file. Entries are validated exactly like API payloads.
type seedData struct {
	Products  []validation.Record `json:"products"`
	Customers []validation.Record `json:"customers"`
}

type seedStats struct {
	created int
	updated int
	skipped int
}

func main() {
	source := flag.String("source", "", "seed file path or http(s) URL; built-in demo catalog when empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", false)
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	log.Info().Msg("starting seed script")

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database ready")

	raw, err := loadSource(*source)
	if err != nil {
		log.Fatal().Err(err).Str("source", *source).Msg("failed to load seed data")
	}
	var data seedData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Fatal().Err(err).Msg("failed to parse seed data")
	}

	ctx := context.Background()
	s := newSeeder(repository.NewStore(gormDB), log)

	products, err := s.seedProducts(ctx, data.Products)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed products")
	}
	customers, err := s.seedCustomers(ctx, data.Customers)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed customers")
	}

	log.Info().
		Int("products_created", products.created).
		Int("products_updated", products.updated).
		Int("products_skipped", products.skipped).
		Int("customers_created", customers.created).
		Int("customers_updated", customers.updated).
		Int("customers_skipped", customers.skipped).
		Msg("seed completed")
}

// loadSource reads the seed payload from a file, an http(s) URL, or the built-in catalog.
func loadSource(source string) ([]byte, error) {
	switch {
	case source == "":
		return []byte(defaultCatalog), nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return fetch(source)
	default:
		return os.ReadFile(source)
	}
}

func fetch(url string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed source returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

type seeder struct {
	validator *validation.Validator
	customers service.CustomerService
	accounts  service.AccountService
	products  service.ProductService
	log       zerolog.Logger
}

func newSeeder(store repository.Store, log zerolog.Logger) *seeder {
	return &seeder{
		validator: validation.New(),
		customers: service.NewCustomerService(store, log),
		accounts:  service.NewAccountService(store),
		products:  service.NewProductService(store, log),
		log:       log,
	}
}

// seedProducts creates products, or updates the one already carrying the same name.
func (s *seeder) seedProducts(ctx context.Context, records []validation.Record) (seedStats, error) {
	var stats seedStats
	for i, rec := range records {
		p, err := s.validator.Product(rec)
		if err != nil {
			s.log.Warn().Err(err).Int("index", i).Msg("skipping invalid product")
			stats.skipped++
			continue
		}

		existing, err := s.findProduct(ctx, p.Name)
		if err != nil {
			return stats, fmt.Errorf("error checking product %q: %w", p.Name, err)
		}
		if existing == nil {
			if _, err := s.products.Create(ctx, p); err != nil {
				return stats, fmt.Errorf("error creating product %q: %w", p.Name, err)
			}
			stats.created++
			continue
		}

		imageURL := ""
		if p.ImageURL != nil {
			imageURL = *p.ImageURL
		}
		patch := model.ProductPatch{Price: &p.Price, Type: &p.Type, ImageURL: &imageURL}
		if _, err := s.products.Update(ctx, existing.ID, patch); err != nil {
			return stats, fmt.Errorf("error updating product %q: %w", p.Name, err)
		}
		stats.updated++
	}
	return stats, nil
}

func (s *seeder) findProduct(ctx context.Context, name string) (*model.Product, error) {
	matches, err := s.products.SearchByName(ctx, name)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		if strings.EqualFold(matches[i].Name, name) {
			return &matches[i], nil
		}
	}
	return nil, nil
}

// seedCustomers creates customers keyed by email, plus the account nested under "account"
// when the customer has none yet.
func (s *seeder) seedCustomers(ctx context.Context, records []validation.Record) (seedStats, error) {
	var stats seedStats
	for i, rec := range records {
		c, err := s.validator.Customer(rec)
		if err != nil {
			s.log.Warn().Err(err).Int("index", i).Msg("skipping invalid customer")
			stats.skipped++
			continue
		}

		found, err := s.customers.List(ctx, repository.CustomerFilter{Email: c.Email})
		if err != nil {
			return stats, fmt.Errorf("error checking customer %s: %w", c.Email, err)
		}
		var saved *model.Customer
		if len(found) == 0 {
			if saved, err = s.customers.Create(ctx, c); err != nil {
				return stats, fmt.Errorf("error creating customer %s: %w", c.Email, err)
			}
			stats.created++
		} else {
			patch := model.CustomerPatch{Name: &c.Name, Phone: &c.Phone}
			if saved, err = s.customers.Update(ctx, found[0].ID, patch); err != nil {
				return stats, fmt.Errorf("error updating customer %s: %w", c.Email, err)
			}
			stats.updated++
		}

		if raw, ok := rec["account"]; ok {
			if err := s.seedAccount(ctx, saved, raw); err != nil {
				return stats, err
			}
		}
	}
	return stats, nil
}

func (s *seeder) seedAccount(ctx context.Context, c *model.Customer, raw json.RawMessage) error {
	existing, err := s.accounts.List(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("error checking account of customer %d: %w", c.ID, err)
	}
	if len(existing) > 0 {
		return nil
	}

	rec, err := validation.Decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Uint("customer_id", c.ID).Msg("skipping invalid account")
		return nil
	}
	rec["customer_id"] = json.RawMessage(fmt.Sprint(c.ID))
	draft, err := s.validator.Account(rec)
	if err != nil {
		s.log.Warn().Err(err).Uint("customer_id", c.ID).Msg("skipping invalid account")
		return nil
	}
	if _, err := s.accounts.Create(ctx, draft); err != nil {
		return fmt.Errorf("error creating account for customer %d: %w", c.ID, err)
	}
	return nil
}
