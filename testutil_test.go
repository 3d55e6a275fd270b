package injector

import (
	"errors"
	"strings"
)

// ============================================================================
// Shared Test Types
// ============================================================================

const (
	statusInit     = "init"
	statusModified = "modified"
)

// TContract is the abstract type used across tests.
type TContract interface {
	Status() string
}

// TOther is an interface nothing implements.
type TOther interface {
	Unrelated()
}

// TImpl implements TContract. Its constructor takes an optional status.
type TImpl struct {
	status string
}

func (i *TImpl) Status() string { return i.status }

func NewTImpl(status ...string) *TImpl {
	s := statusInit
	if len(status) > 0 {
		s = status[0]
	}
	return &TImpl{status: s}
}

// TSingleton is a singleton implementation of TContract.
type TSingleton struct {
	Singleton
	status string
}

func (s *TSingleton) Status() string { return s.status }

func NewTSingleton(status ...string) *TSingleton {
	return &TSingleton{status: NewTImpl(status...).status}
}

// TPlain has no constructor and no dependencies.
type TPlain struct {
	Name string
}

// TService depends on TContract and *TPlain.
type TService struct {
	Contract TContract
	Plain    *TPlain
}

func NewTService(contract TContract, plain *TPlain) *TService {
	return &TService{Contract: contract, Plain: plain}
}

// THandler exposes methods for Tap tests.
type THandler struct {
	prefix string
}

func (h *THandler) Describe(contract TContract) string {
	return h.prefix + contract.Status()
}

func (h *THandler) Join(contract TContract, parts ...string) string {
	return contract.Status() + ":" + strings.Join(parts, ",")
}

func (h *THandler) Fail(contract TContract) (string, error) {
	return "", errTHandler
}

var errTHandler = errors.New("handler failed")

// Cyclic types.
type TCycleA struct{ B *TCycleB }
type TCycleB struct{ A *TCycleA }

func NewTCycleA(b *TCycleB) *TCycleA { return &TCycleA{B: b} }
func NewTCycleB(a *TCycleA) *TCycleB { return &TCycleB{A: a} }
