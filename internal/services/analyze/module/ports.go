package module

import "discernio/internal/services/analyze/domain"

// Ports exposed by the analyze module
type Ports struct {
	Analyze domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
