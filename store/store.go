// ABOUTME: File-backed dataset store for listings and client leads
// ABOUTME: Loads JSONL files, persists client mutations, and allocates sequential IDs
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/oakfield/hearth/models"
)

// Store owns the in-memory listing and client collections. Listings are
// immutable after load and may be read without locking; all client reads
// and writes go through the store's methods, which serialize mutations
// behind a single lock and rewrite the clients file after every change.
type Store struct {
	listingsPath string
	clientsPath  string

	listings []models.Listing

	mu      sync.RWMutex
	clients []models.Client
}

// Open loads both datasets. A missing file yields an empty collection so
// the server can start against a fresh data directory; an unparseable
// line is logged and skipped, never fatal.
func Open(listingsPath, clientsPath string) (*Store, error) {
	s := &Store{
		listingsPath: listingsPath,
		clientsPath:  clientsPath,
	}

	if err := loadLines(listingsPath, &s.listings); err != nil {
		return nil, fmt.Errorf("failed to load listings: %w", err)
	}
	if err := loadLines(clientsPath, &s.clients); err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}

	log.Info().
		Int("listings", len(s.listings)).
		Int("clients", len(s.clients)).
		Msg("datasets loaded")

	return s, nil
}

// loadLines parses a line-delimited JSON file into *records, one object
// per line. Blank lines and lines that fail to parse are skipped with a
// warning.
func loadLines[T any](path string, records *[]T) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("data file not found, starting empty")
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec T
		if err := json.Unmarshal(line, &rec); err != nil {
			log.Warn().Str("path", path).Int("line", lineno).Err(err).
				Msg("skipping line that was not valid JSON")
			continue
		}
		*records = append(*records, rec)
	}
	return scanner.Err()
}

// saveClients rewrites the whole clients file, one JSON object per line.
// The rewrite is not atomic; a crash mid-write can truncate the file.
// Callers hold s.mu.
func (s *Store) saveClients() error {
	if dir := filepath.Dir(s.clientsPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(s.clientsPath)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for i := range s.clients {
		if err := enc.Encode(&s.clients[i]); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Listings returns the full listing collection in load order. The slice
// must be treated as read-only.
func (s *Store) Listings() []models.Listing {
	return s.listings
}

// FindListing returns the listing with the given property ID, or nil.
func (s *Store) FindListing(propertyID string) *models.Listing {
	for i := range s.listings {
		if s.listings[i].PropertyID == propertyID {
			return &s.listings[i]
		}
	}
	return nil
}

// Clients returns a snapshot copy of the client collection.
func (s *Store) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// FindClient returns a copy of the client with the given ID.
func (s *Store) FindClient(clientID string) (models.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.clients {
		if s.clients[i].ClientID == clientID {
			return s.clients[i], true
		}
	}
	return models.Client{}, false
}

// AppendClient adds a client record and persists the collection.
func (s *Store) AppendClient(c models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append(s.clients, c)
	if err := s.saveClients(); err != nil {
		s.clients = s.clients[:len(s.clients)-1]
		return fmt.Errorf("failed to persist clients: %w", err)
	}
	return nil
}

// UpdateClient applies a patch to the client with the given ID and
// persists the collection. Absence is signalled via found=false, not an
// error; err reports persistence failure only.
func (s *Store) UpdateClient(clientID string, patch func(*models.Client)) (found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ClientID == clientID {
			prev := s.clients[i]
			patch(&s.clients[i])
			if err := s.saveClients(); err != nil {
				s.clients[i] = prev
				return true, fmt.Errorf("failed to persist clients: %w", err)
			}
			return true, nil
		}
	}
	return false, nil
}

var (
	clientIDPattern  = regexp.MustCompile(`^C(\d+)$`)
	viewingIDPattern = regexp.MustCompile(`^V(\d+)$`)
)

// NextClientID returns the next sequential client ID, formatted as
// C + 4-digit zero-padded number. An empty store yields C0001.
func (s *Store) NextClientID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextClientIDLocked()
}

func (s *Store) nextClientIDLocked() string {
	max := 0
	for i := range s.clients {
		m := clientIDPattern.FindStringSubmatch(s.clients[i].ClientID)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("C%04d", max+1)
}

// NextViewingID returns the next viewing ID across every client's
// viewings combined, with a floor of V1001. The scan is linear in the
// total number of viewings, which is fine at this dataset's scale; a
// high-volume scheduler would want a persisted counter instead.
func (s *Store) NextViewingID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextViewingIDLocked()
}

func (s *Store) nextViewingIDLocked() string {
	max := 1000
	for i := range s.clients {
		for j := range s.clients[i].Viewings {
			m := viewingIDPattern.FindStringSubmatch(s.clients[i].Viewings[j].ViewingID)
			if m == nil {
				continue
			}
			if n, err := strconv.Atoi(m[1]); err == nil && n > max {
				max = n
			}
		}
	}
	return fmt.Sprintf("V%d", max+1)
}
