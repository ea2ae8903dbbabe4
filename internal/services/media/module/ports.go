package module

import "discernio/internal/services/media/domain"

// Ports exposed by the media module
type Ports struct {
	Media domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
