// Package content loads the copy shown by step and scene collaborators.
//
// A Pack is optional: every field falls back to a built-in default, so a
// file only needs the fields it overrides.
package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fyrsmithlabs/keepsake/internal/journey"
)

// Pack is the full set of user-facing copy.
type Pack struct {
	Title       string            `yaml:"title" toml:"title"`
	Compliments []string          `yaml:"compliments" toml:"compliments"`
	Hugs        []string          `yaml:"hugs" toml:"hugs"`
	Atmosphere  []string          `yaml:"atmosphere" toml:"atmosphere"`
	Playlist    []Track           `yaml:"playlist" toml:"playlist"`
	Milestones  []string          `yaml:"milestones" toml:"milestones"`
	Proposal    Proposal          `yaml:"proposal" toml:"proposal"`
	Memories    []string          `yaml:"memories" toml:"memories"`
	Treasure    []string          `yaml:"treasure" toml:"treasure"`
	Captions    map[string]string `yaml:"captions" toml:"captions"`
	Quiz        []Question        `yaml:"quiz" toml:"quiz"`
	Stars       []string          `yaml:"stars" toml:"stars"`
	Contract    []string          `yaml:"contract" toml:"contract"`
	Promises    []string          `yaml:"promises" toml:"promises"`
	Scratch     string            `yaml:"scratch" toml:"scratch"`
	Slides      []string          `yaml:"slides" toml:"slides"`
}

// Track is one playlist entry.
type Track struct {
	Title  string `yaml:"title" toml:"title"`
	Artist string `yaml:"artist" toml:"artist"`
}

func (t Track) String() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Title + " - " + t.Artist
}

// Proposal is the yes/no question of the PROPOSAL step.
type Proposal struct {
	Question string `yaml:"question" toml:"question"`
	Yes      string `yaml:"yes" toml:"yes"`
	No       string `yaml:"no" toml:"no"`
}

// Question is one multiple-choice quiz entry. Answer indexes Options.
type Question struct {
	Prompt  string   `yaml:"prompt" toml:"prompt"`
	Options []string `yaml:"options" toml:"options"`
	Answer  int      `yaml:"answer" toml:"answer"`
}

// Default returns the built-in pack.
func Default() Pack {
	return Pack{
		Title: "keepsake",
		Compliments: []string{
			"You make ordinary days feel like holidays.",
			"Your laugh is my favourite sound.",
			"You are braver than you think.",
			"Everything is softer when you are around.",
		},
		Hugs: []string{
			"Sending the biggest hug across the terminal.",
			"Hug delivered. Refills are unlimited.",
		},
		Atmosphere: []string{
			"The lights dim a little. Somewhere, a candle flickers.",
			"Rain taps gently on the window.",
			"A warm breeze carries the smell of jasmine.",
		},
		Playlist: []Track{
			{Title: "First Dance", Artist: "The Evenings"},
			{Title: "Slow Morning", Artist: "June & Co"},
			{Title: "Home Again", Artist: "Lanterns"},
		},
		Milestones: []string{
			"The day we met",
			"Our first trip",
			"The first apartment",
			"Today",
		},
		Proposal: Proposal{
			Question: "Will you keep walking this story with me?",
			Yes:      "Yes",
			No:       "Ask me again",
		},
		Memories: []string{
			"Coffee that went cold because we kept talking.",
			"Getting lost and not minding at all.",
			"Dancing in the kitchen at midnight.",
		},
		Treasure: []string{
			"Look where the sun rises.",
			"Count the steps to the old bench.",
			"The last clue is already in your hands.",
		},
		Captions: map[string]string{
			"GARDEN":    "Welcome to our garden of moments.",
			"HERO":      "Every story needs a hero. Ours is you.",
			"MOOD":      "Pick the mood, I will follow.",
			"COUNTER":   "Days together, and counting.",
			"MAP":       "All the places we have been.",
			"HIGHLIGHT": "The highlight reel.",
			"VIDEO":     "Press play.",
			"SCRAPBOOK": "Pages from our scrapbook.",
			"MESSAGES":  "Words from the people who love you.",
			"WISH":      "Make a wish.",
			"LETTER":    "One last letter, just for you.",
		},
		Quiz: []Question{
			{Prompt: "Where did we first meet?", Options: []string{"A cafe", "A library", "A train"}, Answer: 0},
			{Prompt: "What is our song?", Options: []string{"First Dance", "Home Again", "Slow Morning"}, Answer: 0},
		},
		Stars:    []string{"laughter", "patience", "adventure", "home", "always"},
		Contract: []string{"Breakfast in bed on Sundays.", "Unlimited hugs.", "Always share dessert."},
		Promises: []string{"I promise to listen.", "I promise to make you laugh.", "I promise to stay."},
		Scratch:  "You are my favourite adventure.",
		Slides:   []string{"Sunrise at the beach", "The rainy picnic", "Our first snow"},
	}
}

// Caption returns the caption for scene, or its name when none is set.
func (p Pack) Caption(scene journey.Scene) string {
	if c, ok := p.Captions[scene.String()]; ok && c != "" {
		return c
	}
	return scene.String()
}

// Validate checks the pack for values collaborators cannot work with.
func (p Pack) Validate() error {
	var errs []error
	for name := range p.Captions {
		if _, err := journey.ParseScene(name); err != nil {
			errs = append(errs, fmt.Errorf("captions: %w", err))
		}
	}
	for i, q := range p.Quiz {
		if strings.TrimSpace(q.Prompt) == "" {
			errs = append(errs, fmt.Errorf("quiz[%d]: prompt is required", i))
		}
		if len(q.Options) < 2 {
			errs = append(errs, fmt.Errorf("quiz[%d]: at least two options are required", i))
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			errs = append(errs, fmt.Errorf("quiz[%d]: answer %d out of range", i, q.Answer))
		}
	}
	for i, t := range p.Playlist {
		if strings.TrimSpace(t.Title) == "" {
			errs = append(errs, fmt.Errorf("playlist[%d]: title is required", i))
		}
	}
	return errors.Join(errs...)
}

// overlay returns base with every non-empty field of p applied on top.
// Captions are merged key by key.
func (p Pack) overlay(base Pack) Pack {
	out := base
	if p.Title != "" {
		out.Title = p.Title
	}
	pick(&out.Compliments, p.Compliments)
	pick(&out.Hugs, p.Hugs)
	pick(&out.Atmosphere, p.Atmosphere)
	pick(&out.Playlist, p.Playlist)
	pick(&out.Milestones, p.Milestones)
	pick(&out.Memories, p.Memories)
	pick(&out.Treasure, p.Treasure)
	pick(&out.Quiz, p.Quiz)
	pick(&out.Stars, p.Stars)
	pick(&out.Contract, p.Contract)
	pick(&out.Promises, p.Promises)
	pick(&out.Slides, p.Slides)
	if p.Proposal.Question != "" {
		out.Proposal.Question = p.Proposal.Question
	}
	if p.Proposal.Yes != "" {
		out.Proposal.Yes = p.Proposal.Yes
	}
	if p.Proposal.No != "" {
		out.Proposal.No = p.Proposal.No
	}
	if p.Scratch != "" {
		out.Scratch = p.Scratch
	}
	if len(p.Captions) > 0 {
		merged := make(map[string]string, len(base.Captions)+len(p.Captions))
		for k, v := range base.Captions {
			merged[k] = v
		}
		for k, v := range p.Captions {
			merged[strings.ToUpper(strings.TrimSpace(k))] = v
		}
		out.Captions = merged
	}
	return out
}

func pick[T any](dst *[]T, src []T) {
	if len(src) > 0 {
		*dst = src
	}
}
