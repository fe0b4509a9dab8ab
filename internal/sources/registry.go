package sources

import (
	"fmt"

	"codefolio/internal/models"
	"codefolio/internal/structures"
)

// ContestRegistry keeps contest sources in registration order, which is the
// tie-break order of merged listings.
type ContestRegistry struct {
	sources []ContestSource
}

func NewContestRegistry(conf *structures.Config, deps *Deps) *ContestRegistry {
	r := &ContestRegistry{}
	r.Register(NewCodeChefSource(conf, deps))
	r.Register(NewCodeforcesSource(conf, deps))
	r.Register(NewLeetCodeSource(conf, deps))
	r.Register(NewGeeksforGeeksSource(conf, deps))
	r.Register(NewHackerRankSource(conf, deps))
	return r
}

// NewContestRegistryWith registers exactly the given sources, in order.
func NewContestRegistryWith(sources ...ContestSource) *ContestRegistry {
	r := &ContestRegistry{}
	for _, s := range sources {
		r.Register(s)
	}
	return r
}

func (r *ContestRegistry) Register(source ContestSource) {
	r.sources = append(r.sources, source)
}

func (r *ContestRegistry) Sources() []ContestSource {
	return r.sources
}

// ProfileRegistry maps each platform to its profile source.
type ProfileRegistry struct {
	sources map[models.Platform]ProfileSource
}

func NewProfileRegistry(conf *structures.Config, deps *Deps) *ProfileRegistry {
	r := &ProfileRegistry{sources: make(map[models.Platform]ProfileSource, len(models.Platforms))}
	r.Register(NewLeetCodeProfileSource(conf, deps))
	r.Register(NewCodeforcesProfileSource(conf, deps))
	r.Register(NewCodeChefProfileSource(conf, deps))
	r.Register(NewAtCoderProfileSource(conf, deps))
	r.Register(NewGeeksforGeeksProfileSource(conf, deps))
	r.Register(NewGitHubProfileSource(conf, deps))
	return r
}

func NewProfileRegistryWith(sources ...ProfileSource) *ProfileRegistry {
	r := &ProfileRegistry{sources: make(map[models.Platform]ProfileSource, len(sources))}
	for _, s := range sources {
		r.Register(s)
	}
	return r
}

func (r *ProfileRegistry) Register(source ProfileSource) {
	r.sources[source.Platform()] = source
}

func (r *ProfileRegistry) Get(platform models.Platform) (ProfileSource, error) {
	source, ok := r.sources[platform]
	if !ok {
		return nil, fmt.Errorf("no profile source for %s", platform)
	}
	return source, nil
}
