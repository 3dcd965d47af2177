package mcp

import "market-bridge/internal/domain"

type serverTimeInput struct{}

type searchAssetsOutput struct {
	Assets []domain.Asset `json:"assets"`
}

type listOutput[T any] struct {
	Items []T `json:"items"`
}
