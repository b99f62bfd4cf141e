package journey

import (
	"fmt"
	"strings"
)

// Scene is a unit of the story shown once the journey reaches StepFinal.
type Scene int

const (
	SceneGarden Scene = iota
	SceneHero
	SceneMood
	SceneCounter
	SceneQuiz
	SceneMap
	SceneScanner
	SceneHighlight
	SceneVideo
	SceneScrapbook
	SceneCarousel
	SceneMessages
	SceneWish
	SceneConstellation
	SceneContract
	ScenePromise
	SceneScratch
	SceneLetter
)

var sceneNames = [...]string{
	SceneGarden:        "GARDEN",
	SceneHero:          "HERO",
	SceneMood:          "MOOD",
	SceneCounter:       "COUNTER",
	SceneQuiz:          "QUIZ",
	SceneMap:           "MAP",
	SceneScanner:       "SCANNER",
	SceneHighlight:     "HIGHLIGHT",
	SceneVideo:         "VIDEO",
	SceneScrapbook:     "SCRAPBOOK",
	SceneCarousel:      "CAROUSEL",
	SceneMessages:      "MESSAGES",
	SceneWish:          "WISH",
	SceneConstellation: "CONSTELLATION",
	SceneContract:      "CONTRACT",
	ScenePromise:       "PROMISE",
	SceneScratch:       "SCRATCH",
	SceneLetter:        "LETTER",
}

// DefaultScenes returns the story order.
func DefaultScenes() []Scene {
	scenes := make([]Scene, len(sceneNames))
	for i := range sceneNames {
		scenes[i] = Scene(i)
	}
	return scenes
}

// DefaultInteractive returns the scenes that need a completion signal
// before the story moves past them.
func DefaultInteractive() []Scene {
	return []Scene{
		SceneQuiz,
		SceneScanner,
		SceneCarousel,
		SceneConstellation,
		SceneContract,
		ScenePromise,
		SceneScratch,
	}
}

// Valid reports whether s is one of the defined scenes.
func (s Scene) Valid() bool {
	return s >= 0 && int(s) < len(sceneNames)
}

func (s Scene) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Scene(%d)", int(s))
	}
	return sceneNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Scene) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid scene %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scene) UnmarshalText(text []byte) error {
	parsed, err := ParseScene(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseScene parses a scene name, ignoring case and surrounding space.
func ParseScene(name string) (Scene, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range sceneNames {
		if n == want {
			return Scene(i), nil
		}
	}
	return 0, fmt.Errorf("unknown scene %q", name)
}
