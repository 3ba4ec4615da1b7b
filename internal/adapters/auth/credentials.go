package auth

import (
	"crypto/subtle"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"campusevents/internal/domain"
)

// DefaultCredentials is the built-in login list used when no credentials file is configured.
func DefaultCredentials() []domain.Credential {
	return []domain.Credential{
		{ID: 1, Email: "admin@sunmoon.ac.kr", Password: "admin123", Role: domain.RoleAdmin, Name: "Admin User"},
		{ID: 2, Email: "student@sunmoon.ac.kr", Password: "student123", Role: domain.RoleUser, Name: "Student User"},
	}
}

type credentialsFile struct {
	Users []domain.Credential `yaml:"users"`
}

// LoadCredentialsFile reads a YAML document of the form
//
//	users:
//	  - id: 1
//	    email: admin@example.com
//	    password: secret
//	    role: admin
//	    name: Admin
func LoadCredentialsFile(path string) ([]domain.Credential, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials %s: %w", path, err)
	}
	var f credentialsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", path, err)
	}
	if len(f.Users) == 0 {
		return nil, fmt.Errorf("credentials %s: no users defined", path)
	}
	return f.Users, nil
}

type staticCredentialStore struct {
	byEmail map[string]domain.Credential
}

// NewStaticCredentialStore returns a read-only CredentialStore over creds.
// Emails and ids must be unique and every role must be admin or user.
func NewStaticCredentialStore(creds []domain.Credential) (domain.CredentialStore, error) {
	s := &staticCredentialStore{byEmail: make(map[string]domain.Credential, len(creds))}
	ids := make(map[int64]struct{}, len(creds))
	for _, c := range creds {
		if c.Email == "" || c.Password == "" {
			return nil, fmt.Errorf("credential %d: email and password are required", c.ID)
		}
		if !c.Role.Valid() {
			return nil, fmt.Errorf("credential %s: unknown role %q", c.Email, c.Role)
		}
		if _, dup := s.byEmail[c.Email]; dup {
			return nil, fmt.Errorf("credential %s: duplicate email", c.Email)
		}
		if _, dup := ids[c.ID]; dup {
			return nil, fmt.Errorf("credential %s: duplicate id %d", c.Email, c.ID)
		}
		s.byEmail[c.Email] = c
		ids[c.ID] = struct{}{}
	}
	return s, nil
}

// Lookup matches email and password exactly (case-sensitive).
func (s *staticCredentialStore) Lookup(email, password string) (*domain.Credential, bool) {
	c, ok := s.byEmail[email]
	if !ok {
		return nil, false
	}
	if subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) != 1 {
		return nil, false
	}
	return &c, true
}
