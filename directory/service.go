// Package directory implements the user actions of the client: each one
// keeps the loading overlay up while it talks to the backend, logs what
// went wrong and hands the results to a View.
package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"relman/api"
	"relman/loading"
	"relman/logger"
)

const (
	// DetailsNetworkDepth is the traversal depth shown in a person's details.
	DetailsNetworkDepth = 2
	// NetworkDepth is the traversal depth of the full network view.
	NetworkDepth = 3
)

var (
	ErrEmptyInterest       = errors.New("empty interest")
	ErrInvalidRelationship = errors.New("invalid relationship")
)

// Backend is the part of the REST client the use cases need.
type Backend interface {
	ListPeople(ctx context.Context) ([]api.Person, error)
	GetPerson(ctx context.Context, id int64) (api.Person, error)
	Friends(ctx context.Context, id int64) ([]api.Person, error)
	Similar(ctx context.Context, id int64) ([]api.SimilarPerson, error)
	Network(ctx context.Context, id int64, depth int) ([]api.Person, error)
	Recommendations(ctx context.Context, id int64) ([]api.Person, error)
	SearchByInterest(ctx context.Context, interest string) ([]api.Person, error)
	ShortestPath(ctx context.Context, from, to int64) (api.Path, error)
	Stats(ctx context.Context) (api.Stats, error)
	CreatePerson(ctx context.Context, p api.NewPerson) (api.Person, error)
	Connect(ctx context.Context, from, to int64) error
}

// Details is everything shown in a person's detail panel.
type Details struct {
	Person          api.Person
	Friends         []api.Person
	Similar         []api.SimilarPerson
	Network         []api.Person
	Recommendations []api.Person
}

// View renders results. Implementations must be safe to call from any
// goroutine.
type View interface {
	ShowPeople(people []api.Person)
	ShowStats(stats api.Stats)
	ShowSearchResults(interest string, people []api.Person)
	ShowDetails(d Details)
	ShowNetwork(name string, people []api.Person)
	ShowPath(from, to int64, path api.Path)
	ResetForm()
}

// Dialogs are the blocking prompts of the browser.
type Dialogs interface {
	Alert(message string)
	Confirm(message string) bool
}

type Service struct {
	backend Backend
	overlay *loading.Controller
	view    View
	dialogs Dialogs
	log     *logger.Logger
}

func New(backend Backend, overlay *loading.Controller, view View, dialogs Dialogs, log *logger.Logger) *Service {
	return &Service{
		backend: backend,
		overlay: overlay,
		view:    view,
		dialogs: dialogs,
		log:     log,
	}
}

// LoadPeople refreshes the people list. Failures are only logged.
func (s *Service) LoadPeople(ctx context.Context) error {
	release := s.overlay.Track("Loading people...")
	defer release()

	people, err := s.backend.ListPeople(ctx)
	if err != nil {
		s.log.Error(err, "failed to load people")
		return err
	}
	s.view.ShowPeople(people)
	return nil
}

// LoadStats refreshes the statistics card in the background, without the
// overlay.
func (s *Service) LoadStats(ctx context.Context) error {
	stats, err := s.backend.Stats(ctx)
	if err != nil {
		s.log.Error(err, "failed to load statistics")
		return err
	}
	s.view.ShowStats(stats)
	return nil
}

// Refresh reloads both the people list and the statistics.
func (s *Service) Refresh(ctx context.Context) {
	s.LoadPeople(ctx)
	s.LoadStats(ctx)
}

// AddPerson validates and submits the form, then refreshes the list and
// the statistics.
func (s *Service) AddPerson(ctx context.Context, form PersonForm) (api.Person, error) {
	p, err := form.Parse()
	if err != nil {
		s.log.Warn(fmt.Sprintf("rejected person form: %v", err))
		s.dialogs.Alert(err.Error())
		return api.Person{}, err
	}

	release := s.overlay.Track("Saving person...")
	defer release()

	created, err := s.backend.CreatePerson(ctx, p)
	if err != nil {
		s.log.Error(err, "failed to add person")
		s.dialogs.Alert("Failed to add person.")
		return api.Person{}, err
	}

	s.view.ResetForm()
	s.Refresh(ctx)
	s.log.Info(fmt.Sprintf("added person %d (%s)", created.ID, created.Name))
	s.dialogs.Alert("Person added successfully!")
	return created, nil
}

// Search lists the people sharing interest. An empty interest is rejected
// before any request is made.
func (s *Service) Search(ctx context.Context, interest string) error {
	interest = strings.TrimSpace(interest)
	if interest == "" {
		s.dialogs.Alert("Please type an interest to search for.")
		return ErrEmptyInterest
	}

	release := s.overlay.Track("Searching...")
	defer release()

	people, err := s.backend.SearchByInterest(ctx, interest)
	if err != nil {
		s.log.Error(err, "search failed")
		return err
	}
	s.view.ShowSearchResults(interest, people)
	return nil
}

// ShowDetails loads a person together with friends, similar people,
// nearby network and recommendations, all in parallel.
func (s *Service) ShowDetails(ctx context.Context, id int64) error {
	release := s.overlay.Track("")
	defer release()

	var d Details
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.Person, err = s.backend.GetPerson(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		d.Friends, err = s.backend.Friends(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		d.Similar, err = s.backend.Similar(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		d.Network, err = s.backend.Network(gctx, id, DetailsNetworkDepth)
		return err
	})
	g.Go(func() error {
		recs, err := s.backend.Recommendations(gctx, id)
		if err != nil {
			s.log.Warn(fmt.Sprintf("no recommendations for %d: %v", id, err))
			return nil
		}
		d.Recommendations = recs
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Error(err, "failed to load details")
		return err
	}

	s.view.ShowDetails(d)
	return nil
}

// ShowNetwork loads everyone within NetworkDepth of id.
func (s *Service) ShowNetwork(ctx context.Context, id int64, name string) error {
	release := s.overlay.Track("")
	defer release()

	people, err := s.backend.Network(ctx, id, NetworkDepth)
	if err != nil {
		s.log.Error(err, "failed to load network")
		return err
	}
	s.view.ShowNetwork(name, people)
	return nil
}

// Connect asks for confirmation, then records that from knows to and
// refreshes the list and the statistics. Declining is not an error.
func (s *Service) Connect(ctx context.Context, from, to int64) error {
	if from <= 0 || to <= 0 || from == to {
		s.dialogs.Alert("Pick two different people.")
		return ErrInvalidRelationship
	}
	if !s.dialogs.Confirm("Create a relationship between these people?") {
		return nil
	}

	release := s.overlay.Track("Creating relationship...")
	defer release()

	if err := s.backend.Connect(ctx, from, to); err != nil {
		s.log.Error(err, "failed to create relationship")
		s.dialogs.Alert("Failed to create relationship.")
		return err
	}

	s.dialogs.Alert("Relationship created successfully!")
	s.Refresh(ctx)
	return nil
}

// FindPath looks up the shortest chain of acquaintances between two people.
func (s *Service) FindPath(ctx context.Context, from, to int64) error {
	if from <= 0 || to <= 0 || from == to {
		s.dialogs.Alert("Pick two different people.")
		return ErrInvalidRelationship
	}

	release := s.overlay.Track("")
	defer release()

	path, err := s.backend.ShortestPath(ctx, from, to)
	if err != nil {
		s.log.Error(err, "failed to find path")
		s.dialogs.Alert("No path found between these people.")
		return err
	}
	s.view.ShowPath(from, to, path)
	return nil
}
