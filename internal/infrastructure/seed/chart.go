// Package seed loads a chart of accounts from YAML and creates it through
// the account registry.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/iho/restledger/internal/domain"
	"github.com/iho/restledger/internal/usecase"
)

// Account is one ledger of a seeded group.
type Account struct {
	Name           string `yaml:"name"`
	MobileNo       string `yaml:"mobile_no"`
	OpeningBalance string `yaml:"opening_balance"`
	NormalSide     string `yaml:"normal_side"`
}

// Group is a main group with its accounts.
type Group struct {
	Name     string    `yaml:"name"`
	Nature   string    `yaml:"nature"`
	Accounts []Account `yaml:"accounts"`
}

// Chart is the whole seed file.
type Chart struct {
	Groups []Group `yaml:"groups"`
}

// LoadFile reads a chart from path.
func LoadFile(path string) (*Chart, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chart file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes and checks a chart. Unknown keys are rejected so that typos
// do not silently drop accounts.
func Load(r io.Reader) (*Chart, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var chart Chart
	if err := dec.Decode(&chart); err != nil {
		if errors.Is(err, io.EOF) {
			return &chart, nil
		}
		return nil, fmt.Errorf("failed to parse chart: %w", err)
	}

	for i, g := range chart.Groups {
		if g.Name == "" {
			return nil, fmt.Errorf("group %d: name is required", i+1)
		}
		if _, err := domain.ParseNature(g.Nature); err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		for _, a := range g.Accounts {
			if a.Name == "" {
				return nil, fmt.Errorf("group %q: account name is required", g.Name)
			}
			if _, err := a.opening(); err != nil {
				return nil, fmt.Errorf("account %q: %w", a.Name, err)
			}
		}
	}

	return &chart, nil
}

func (a Account) opening() (decimal.Decimal, error) {
	if a.OpeningBalance == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(a.OpeningBalance)
}

// Registry is the part of the account registry a seed needs.
type Registry interface {
	CreateGroup(ctx context.Context, input usecase.CreateGroupInput) (*domain.MainGroup, error)
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
}

// Result counts what Apply did.
type Result struct {
	GroupsCreated   int
	AccountsCreated int
	Skipped         []string
}

// Apply creates every group and account of the chart. Names that already
// exist are skipped, along with the accounts of a skipped group, so a
// chart can be applied more than once.
func Apply(ctx context.Context, chart *Chart, reg Registry) (*Result, error) {
	res := &Result{}

	for _, g := range chart.Groups {
		group, err := reg.CreateGroup(ctx, usecase.CreateGroupInput{Name: g.Name, Nature: g.Nature})
		if errors.Is(err, domain.ErrDuplicateGroupName) {
			res.Skipped = append(res.Skipped, "group "+g.Name)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("create group %q: %w", g.Name, err)
		}
		res.GroupsCreated++

		for _, a := range g.Accounts {
			opening, _ := a.opening()
			_, err := reg.CreateAccount(ctx, usecase.CreateAccountInput{
				Name:           a.Name,
				MobileNo:       a.MobileNo,
				GroupID:        group.ID,
				OpeningBalance: opening,
				NormalSide:     a.NormalSide,
			})
			if errors.Is(err, domain.ErrDuplicateAccountName) {
				res.Skipped = append(res.Skipped, "account "+a.Name)
				continue
			}
			if err != nil {
				return res, fmt.Errorf("create account %q: %w", a.Name, err)
			}
			res.AccountsCreated++
		}
	}

	return res, nil
}
