package tool

import (
	"github.com/m-mizutani/kakeibo/pkg/adapter"
	"github.com/m-mizutani/kakeibo/pkg/analytics"
	"github.com/m-mizutani/kakeibo/pkg/model"
	"github.com/m-mizutani/kakeibo/pkg/repository"
	"github.com/m-mizutani/kakeibo/pkg/vector"
)

// Client contains shared resources that tool handlers use. It is assembled
// once at startup and passed into each tool constructor.
type Client struct {
	Repo    repository.Repository
	Index   vector.Index
	Gemini  adapter.Gemini
	Engine  *analytics.Engine
	Budgets map[model.Category]float64
}
