package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/cmlabs-hris/training-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/newhire"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/program"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/result"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/session"
	"github.com/cmlabs-hris/training-backend-go/internal/domain/user"
)

// Seed is the JSON document a DB can be loaded from. Training rows use their
// persisted shapes and are normalized on load.
type Seed struct {
	Employees []employee.LegacyEmployee `json:"employees"`
	Programs  []program.LegacyProgram   `json:"programs"`
	Sessions  []session.LegacySession   `json:"sessions"`
	Results   []result.LegacyRecord     `json:"results"`
	Teams     []newhire.Team            `json:"teams"`
	Trainees  []newhire.Trainee         `json:"trainees"`
	Users     []SeedUser                `json:"users"`
}

// SeedUser carries a plain password, hashed on load.
type SeedUser struct {
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Password string    `json:"password"`
	Role     user.Role `json:"role"`
}

func LoadSeedFile(db *DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	return LoadSeed(db, f)
}

// LoadSeed adds the seed's rows to db. A row whose id already exists is
// overwritten.
func LoadSeed(db *DB, r io.Reader) error {
	var seed Seed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}

	users := make([]user.User, 0, len(seed.Users))
	for i, su := range seed.Users {
		if !su.Role.IsValid() {
			return fmt.Errorf("seed user %d: %w", i, user.ErrInvalidRole)
		}
		u := user.User{Email: su.Email, Name: su.Name, Role: su.Role}
		if su.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("seed user %d: %w", i, err)
			}
			h := string(hash)
			u.PasswordHash = &h
		}
		users = append(users, u)
	}

	db.txMu.Lock()
	defer db.txMu.Unlock()
	db.mu.Lock()
	defer db.mu.Unlock()
	d := db.data
	for _, e := range employee.NormalizeEmployees(seed.Employees) {
		d.employees[e.EmployeeID] = e
	}
	for _, p := range program.NormalizePrograms(seed.Programs) {
		d.programs[p.Code] = p
	}
	for _, s := range session.NormalizeSessions(seed.Sessions) {
		d.sessions[s.SessionID] = s
	}
	for _, rec := range result.NormalizeRecords(seed.Results) {
		d.results[rec.ResultID] = rec
	}
	for _, t := range seed.Teams {
		d.teams[t.TeamID] = t
	}
	for _, t := range seed.Trainees {
		d.trainees[t.TraineeID] = t
	}
	now := db.now()
	for i, u := range users {
		u.ID = fmt.Sprintf("seed-user-%d", i+1)
		u.CreatedAt, u.UpdatedAt = now, now
		d.users[u.ID] = u
	}
	return nil
}
