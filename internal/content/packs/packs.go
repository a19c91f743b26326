// Package packs registers the scenario packs embedded in the binary.
package packs

import (
	_ "embed"

	"github.com/vovakirdan/starquest/internal/content"
	"github.com/vovakirdan/starquest/internal/registry"
	"github.com/vovakirdan/starquest/internal/voyage"
)

var (
	//go:embed sol.yaml
	solYAML []byte

	//go:embed terranova.yaml
	terraNovaYAML []byte
)

func init() {
	for _, data := range [][]byte{solYAML, terraNovaYAML} {
		register(content.MustParse(data))
	}
}

func register(p *content.Pack) {
	sc, err := p.Scenario()
	if err != nil {
		panic(err)
	}
	registry.Register(sc.ID, func() *voyage.Scenario {
		return sc
	})
}
