package game

type GameState int

const (
	StateMenu GameState = iota
	StatePlaying
	StateGameOver
)

// GameSession holds the run state: screen state plus score/combo/health,
// mutated only through the discrete events the judgment path emits.
type GameSession struct {
	State  GameState
	Score  int
	Combo  int
	Health int

	subJudged  int
	subPassive int
}

func NewGameSession() *GameSession {
	return &GameSession{State: StateMenu, Health: MaxHealth}
}

// Multiplier is 1 + 0.5 per full combo tier.
func (s *GameSession) Multiplier() float64 {
	return 1.0 + float64(s.Combo/ComboTierSize)*0.5
}

// ApplyJudgment folds one judged result into score/combo/health.
func (s *GameSession) ApplyJudgment(q Quality, points int) {
	switch q {
	case QualityPerfect:
		s.Score += int(float64(points) * s.Multiplier())
		s.Combo++
		s.Health = clamp(s.Health+HealthPerfectGain, 0, MaxHealth)
	case QualityGood:
		s.Score += int(float64(points) * s.Multiplier())
		s.Combo++
	case QualityMiss:
		s.Combo = 0
		s.Health = clamp(s.Health-HealthMissCost, 0, MaxHealth)
	}
	if s.Health <= 0 {
		s.State = StateGameOver
	}
}

// ApplyPassiveMiss folds a target expiring unlocked past the line.
func (s *GameSession) ApplyPassiveMiss() {
	s.Combo = 0
	s.Health = clamp(s.Health-HealthPassiveCost, 0, MaxHealth)
	if s.Health <= 0 {
		s.State = StateGameOver
	}
}

// StartRun resets the run counters, subscribes the reducers and enters
// PLAYING. Call only once the sequencer has confirmed it is running.
func (s *GameSession) StartRun(bus *EventBus) {
	s.Score = 0
	s.Combo = 0
	s.Health = MaxHealth
	s.State = StatePlaying

	s.subJudged = bus.Subscribe(EventJudged, func(e Event) {
		s.ApplyJudgment(e.Quality, e.Points)
	})
	s.subPassive = bus.Subscribe(EventPassiveMiss, func(Event) {
		s.ApplyPassiveMiss()
	})
}

// EndRun detaches the reducers so a restart cannot double-register.
func (s *GameSession) EndRun(bus *EventBus) {
	bus.Unsubscribe(EventJudged, s.subJudged)
	bus.Unsubscribe(EventPassiveMiss, s.subPassive)
}

func (s *GameSession) HealthFraction() float64 {
	return float64(s.Health) / float64(MaxHealth)
}
