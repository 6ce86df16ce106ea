package store

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/cases"

	"github.com/rcliao/grade-analyzer/internal/model"
)

// MemoryStore implements Store in process memory. It is not safe for
// concurrent use.
type MemoryStore struct {
	students []model.Student
	index    map[string]int // folded name -> position in students
	entropy  *rand.Rand
}

// NewMemoryStore returns an empty roster.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index:   make(map[string]int),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *MemoryStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// foldName normalizes a name for comparison.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

func (s *MemoryStore) lookup(name string) (int, bool) {
	i, ok := s.index[foldName(name)]
	return i, ok
}

func (s *MemoryStore) Find(name string) (model.Student, bool) {
	i, ok := s.lookup(name)
	if !ok {
		return model.Student{}, false
	}
	return s.students[i].Clone(), true
}

func (s *MemoryStore) Exists(name string) bool {
	_, ok := s.lookup(name)
	return ok
}

func (s *MemoryStore) Add(name string) (*model.Student, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if s.Exists(name) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	st := model.Student{
		ID:     s.newID(),
		Name:   name,
		Grades: []int{},
	}
	s.index[foldName(name)] = len(s.students)
	s.students = append(s.students, st)

	out := st.Clone()
	return &out, nil
}

func (s *MemoryStore) AppendGrade(name string, grade int) error {
	i, ok := s.lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, strings.TrimSpace(name))
	}
	if !model.ValidGrade(grade) {
		return fmt.Errorf("%w: got %d", ErrGradeOutOfRange, grade)
	}
	s.students[i].Grades = append(s.students[i].Grades, grade)
	return nil
}

func (s *MemoryStore) List() []model.Student {
	out := make([]model.Student, len(s.students))
	for i, st := range s.students {
		out[i] = st.Clone()
	}
	return out
}
