package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Search(ctx context.Context, in SearchInput) (MediaAnalysis, error)
	Get(ctx context.Context, id string) (MediaAnalysis, error)
}
