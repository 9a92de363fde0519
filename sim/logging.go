package sim

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/solhaven/stargarden/components"
	"github.com/solhaven/stargarden/economy"
	"github.com/solhaven/stargarden/telemetry"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted log message.
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// LogWorldState logs a human-oriented summary of the current world.
func (s *Sim) LogWorldState() {
	roster, speeds := s.census()

	total := 0
	for _, n := range roster.ByKind {
		total += n
	}

	Logf("=== Tick %d (%.0fs sim time) ===", s.tick, float64(s.tick)*s.dt)
	Logf("Bodies: %d (dust %d, comets %d, moons %d, planets %d, stars %d, black holes %d)",
		total,
		roster.ByKind[components.KindDust],
		roster.ByKind[components.KindComet],
		roster.ByKind[components.KindMoon],
		roster.ByKind[components.KindPlanet],
		roster.ByKind[components.KindStar],
		roster.ByKind[components.KindBlackHole])
	Logf("Life: %d living planets (microbial %d, plant %d, animal %d, intelligent %d), population %s",
		roster.LivingPlanets,
		roster.ByStage[components.StageMicrobial],
		roster.ByStage[components.StagePlant],
		roster.ByStage[components.StageAnimal],
		roster.ByStage[components.StageIntelligent],
		humanize.SIWithDigits(roster.TotalPopulation, 1, ""))

	totals := s.ledger.Totals()
	Logf("Resources: raw %s, energy %s, organic %s, biomass %s, cognition %s",
		humanize.Comma(int64(totals[economy.RawMaterial])),
		humanize.Comma(int64(totals[economy.Energy])),
		humanize.Comma(int64(totals[economy.OrganicMatter])),
		humanize.Comma(int64(totals[economy.Biomass])),
		humanize.Comma(int64(totals[economy.Cognition])))

	mean, _, _, p90 := telemetry.SpeedStats(speeds)
	Logf("Kinematics: mean speed %.2f, p90 %.2f, activity %.2f", mean, p90, s.activityFactor())
	Logf("")
}
