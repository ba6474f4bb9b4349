package accounts

import (
	"github.com/cleared-dev/glclean/internal/model"
)

// Service is the chart-of-accounts registry, kept in the order accounts
// were first encountered.
type Service struct {
	accounts []model.Account
	byNumber map[string]model.Account
}

// NewService creates a Service from a slice of accounts. Later duplicates
// of an account number are ignored.
func NewService(accounts []model.Account) *Service {
	s := &Service{byNumber: make(map[string]model.Account, len(accounts))}
	for _, a := range accounts {
		s.Add(a)
	}
	return s
}

// Add registers acct and reports whether it was new.
func (s *Service) Add(acct model.Account) bool {
	if _, ok := s.byNumber[acct.Number]; ok {
		return false
	}
	s.accounts = append(s.accounts, acct)
	s.byNumber[acct.Number] = acct
	return true
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Len returns the number of registered accounts.
func (s *Service) Len() int { return len(s.accounts) }

// Get returns an account by number.
func (s *Service) Get(number string) (model.Account, bool) {
	a, ok := s.byNumber[number]
	return a, ok
}

// Exists reports whether an account number exists.
func (s *Service) Exists(number string) bool {
	_, ok := s.byNumber[number]
	return ok
}

// ByNature returns all accounts of the given nature.
func (s *Service) ByNature(nature model.Nature) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Nature == nature {
			result = append(result, a)
		}
	}
	return result
}
