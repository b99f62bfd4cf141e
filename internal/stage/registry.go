package stage

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/fyrsmithlabs/keepsake/internal/config"
	"github.com/fyrsmithlabs/keepsake/internal/content"
	"github.com/fyrsmithlabs/keepsake/internal/journey"
)

// Env is everything the default collaborators read at construction.
type Env struct {
	Pack          content.Pack
	Secrets       []config.Secret
	SecretDelay   time.Duration
	ShakeReset    time.Duration
	VideoAutoHide time.Duration
	Rand          *rand.Rand
}

// NewEnv builds an Env from configuration and a content pack.
func NewEnv(cfg *config.Config, pack content.Pack) Env {
	return Env{
		Pack:          pack,
		Secrets:       cfg.Journey.Secrets,
		SecretDelay:   cfg.Journey.SecretDelay.Duration(),
		ShakeReset:    cfg.Journey.ShakeReset.Duration(),
		VideoAutoHide: cfg.Video.AutoHide.Duration(),
		Rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (e Env) rand() *rand.Rand {
	if e.Rand == nil {
		return rand.New(rand.NewSource(1))
	}
	return e.Rand
}

// Registry maps steps and scenes to the factories that build their
// collaborators.
type Registry struct {
	steps  map[journey.Step]Factory
	scenes map[journey.Scene]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		steps:  make(map[journey.Step]Factory),
		scenes: make(map[journey.Scene]Factory),
	}
}

// RegisterStep sets the factory for step, replacing any previous one.
func (r *Registry) RegisterStep(step journey.Step, f Factory) {
	r.steps[step] = f
}

// RegisterScene sets the factory for scene, replacing any previous one.
func (r *Registry) RegisterScene(scene journey.Scene, f Factory) {
	r.scenes[scene] = f
}

// Step returns the factory for step.
func (r *Registry) Step(step journey.Step) (Factory, bool) {
	f, ok := r.steps[step]
	return f, ok
}

// Scene returns the factory for scene.
func (r *Registry) Scene(scene journey.Scene) (Factory, bool) {
	f, ok := r.scenes[scene]
	return f, ok
}

// Validate checks that every step before FINAL and every listed scene has
// a factory. FINAL itself shows the scene sequence.
func (r *Registry) Validate(scenes []journey.Scene) error {
	var errs []error
	for _, step := range journey.AllSteps() {
		if step == journey.StepFinal {
			continue
		}
		if _, ok := r.steps[step]; !ok {
			errs = append(errs, fmt.Errorf("no collaborator for step %s", step))
		}
	}
	for _, scene := range scenes {
		if _, ok := r.scenes[scene]; !ok {
			errs = append(errs, fmt.Errorf("no collaborator for scene %s", scene))
		}
	}
	return errors.Join(errs...)
}

// Default returns the registry of built-in collaborators.
func Default(env Env) *Registry {
	r := NewRegistry()
	p := env.Pack

	r.RegisterStep(journey.StepUnlock, func(done func()) Collaborator { return NewUnlock(p.Title, done) })
	r.RegisterStep(journey.StepSecret, func(done func()) Collaborator {
		return NewSecret(env.Secrets, env.SecretDelay, env.ShakeReset, done)
	})
	r.RegisterStep(journey.StepMilestones, func(done func()) Collaborator { return NewMilestones(p.Milestones, done) })
	r.RegisterStep(journey.StepProposal, func(done func()) Collaborator { return NewProposal(p.Proposal, done) })
	r.RegisterStep(journey.StepMemories, func(done func()) Collaborator { return NewMemories(p.Memories, done) })
	r.RegisterStep(journey.StepTreasure, func(done func()) Collaborator { return NewTreasure(p.Treasure, done) })

	for _, scene := range journey.DefaultScenes() {
		scene := scene
		r.RegisterScene(scene, func(func()) Collaborator { return NewCaption(scene, p.Caption(scene)) })
	}

	r.RegisterScene(journey.SceneQuiz, func(done func()) Collaborator { return NewQuiz(p.Quiz, done) })
	r.RegisterScene(journey.SceneScanner, func(done func()) Collaborator { return NewScanner(p.Caption(journey.SceneScanner), done) })
	r.RegisterScene(journey.SceneVideo, func(func()) Collaborator {
		return NewVideo(p.Caption(journey.SceneVideo), env.VideoAutoHide)
	})
	r.RegisterScene(journey.SceneCarousel, func(done func()) Collaborator { return NewCarousel(p.Slides, done) })
	r.RegisterScene(journey.SceneConstellation, func(done func()) Collaborator {
		return NewConstellation(p.Stars, env.rand(), done)
	})
	r.RegisterScene(journey.SceneContract, func(done func()) Collaborator { return NewContract(p.Contract, done) })
	r.RegisterScene(journey.ScenePromise, func(done func()) Collaborator { return NewPromise(p.Promises, done) })
	r.RegisterScene(journey.SceneScratch, func(done func()) Collaborator {
		return NewScratch(p.Scratch, env.rand(), done)
	})

	return r
}
