package cli_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/kakeibo/pkg/cli"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/repository"
)

func setupBudgetFixture(t *testing.T) (dbPath, budgetPath string) {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	dbPath = filepath.Join(dir, "kakeibo.db")

	repo, err := repository.NewSQLite(ctx, dbPath)
	gt.NoError(t, err)
	gt.NoError(t, repo.PutExpense(ctx, &model.Expense{
		ID:       model.NewExpenseID(),
		Date:     "2025-06-15",
		Amount:   30,
		Category: model.CategoryFood,
	}))
	gt.NoError(t, repo.Close())

	budgetPath = filepath.Join(dir, "budgets.yml")
	gt.NoError(t, os.WriteFile(budgetPath, []byte("budgets:\n  food: 100\n  transport: 50\n"), 0o600))
	return dbPath, budgetPath
}

func TestBudgetCommand(t *testing.T) {
	ctx := context.Background()
	dbPath, budgetPath := setupBudgetFixture(t)

	cliErr := cli.Run(ctx, []string{"kakeibo", "--db", dbPath, "--budgets", budgetPath, "budget"})
	gt.True(t, cliErr == nil)

	cliErr = cli.Run(ctx, []string{"kakeibo", "--db", dbPath, "--budgets", budgetPath, "budget", "food"})
	gt.True(t, cliErr == nil)
}

func TestBudgetCommandUnconfiguredCategory(t *testing.T) {
	ctx := context.Background()
	dbPath, budgetPath := setupBudgetFixture(t)

	cliErr := cli.Run(ctx, []string{"kakeibo", "--db", dbPath, "--budgets", budgetPath, "budget", "travel"})
	gt.True(t, cliErr != nil)
}

func TestBudgetCommandWithoutConfig(t *testing.T) {
	dir := t.TempDir()

	cliErr := cli.Run(context.Background(), []string{"kakeibo", "--db", filepath.Join(dir, "kakeibo.db"), "budget"})
	gt.True(t, cliErr != nil)
}

func TestAddCommandRequiresDescription(t *testing.T) {
	dir := t.TempDir()

	cliErr := cli.Run(context.Background(), []string{"kakeibo", "--db", filepath.Join(dir, "kakeibo.db"), "add"})
	gt.True(t, cliErr != nil)
}
