package engine

import (
	"fmt"
	"math"
	"strings"
)

const (
	LikertMin = 1
	LikertMax = 5
	// MaxStartingLevel caps the level an assessment can grant.
	MaxStartingLevel = 11
	DefaultHeroName  = "Hero"
)

// Question is one Likert item of the life assessment.
type Question struct {
	ID       string
	Domain   DomainID
	Text     string
	Hint     string
	Weight   float64
	Positive bool
}

var questionBank = []Question{
	// psychologicalWellbeing
	{ID: "psych_01", Domain: DomainPsychological, Weight: 1.2, Positive: true,
		Text: "I generally feel satisfied with my life and where I am right now",
		Hint: "Think about your overall contentment, not just today"},
	{ID: "psych_02", Domain: DomainPsychological, Weight: 1.0, Positive: true,
		Text: "I can manage stress and difficult emotions effectively when they arise",
		Hint: "Consider your typical response to challenges"},
	{ID: "psych_03", Domain: DomainPsychological, Weight: 1.0, Positive: true,
		Text: "I regularly experience moments of joy, peace, or contentment",
		Hint: "Frequency matters more than intensity"},
	{ID: "psych_04", Domain: DomainPsychological, Weight: 1.0, Positive: true,
		Text: "I feel confident in my ability to handle what comes my way",
		Hint: "This is about self-efficacy and resilience"},
	// health
	{ID: "health_01", Domain: DomainHealth, Weight: 1.2, Positive: true,
		Text: "I consistently get enough quality sleep (7-9 hours for most adults)",
		Hint: "Consider both duration and how rested you feel"},
	{ID: "health_02", Domain: DomainHealth, Weight: 1.0, Positive: true,
		Text: "I engage in physical activity or exercise at least 3-4 times per week",
		Hint: "Any movement counts - walking, sports, gym, yoga"},
	{ID: "health_03", Domain: DomainHealth, Weight: 1.0, Positive: true,
		Text: "I eat nutritious meals regularly and feel good about my eating habits",
		Hint: "Focus on patterns, not perfection"},
	{ID: "health_04", Domain: DomainHealth, Weight: 1.0, Positive: true,
		Text: "I have good energy levels throughout the day",
		Hint: "Think about your typical energy, not today"},
	{ID: "health_05", Domain: DomainHealth, Weight: 0.8, Positive: true,
		Text: "I take care of my physical health proactively (check-ups, preventive care)",
		Hint: "This includes regular doctor visits and health monitoring"},
	// timeUse
	{ID: "time_01", Domain: DomainTimeUse, Weight: 1.2, Positive: true,
		Text: "I have a healthy balance between work/study and personal time",
		Hint: "Neither feels consistently neglected"},
	{ID: "time_02", Domain: DomainTimeUse, Weight: 1.0, Positive: true,
		Text: "I regularly make time for activities I enjoy and find meaningful",
		Hint: "Hobbies, passions, leisure activities"},
	{ID: "time_03", Domain: DomainTimeUse, Weight: 1.0, Positive: true,
		Text: "I feel in control of how I spend my time rather than constantly reacting",
		Hint: "Proactive vs. reactive time management"},
	{ID: "time_04", Domain: DomainTimeUse, Weight: 1.0, Positive: true,
		Text: "I have enough downtime to rest and recharge",
		Hint: "Recovery time is essential, not optional"},
	// education
	{ID: "edu_01", Domain: DomainEducation, Weight: 1.2, Positive: true,
		Text: "I regularly engage in learning new things, whether formally or informally",
		Hint: "Books, courses, tutorials, mentors, practice"},
	{ID: "edu_02", Domain: DomainEducation, Weight: 1.0, Positive: true,
		Text: "I actively work on developing skills that matter to me or my goals",
		Hint: "Deliberate skill development, not passive consumption"},
	{ID: "edu_03", Domain: DomainEducation, Weight: 1.0, Positive: true,
		Text: "I feel intellectually stimulated and challenged in my daily life",
		Hint: "Growing, not stagnating"},
	{ID: "edu_04", Domain: DomainEducation, Weight: 0.8, Positive: true,
		Text: "I have access to learning resources and opportunities when I need them",
		Hint: "Educational access and support"},
	// culturalResilience
	{ID: "culture_01", Domain: DomainCulture, Weight: 1.0, Positive: true,
		Text: "I feel connected to my cultural identity, heritage, or traditions",
		Hint: "This can include family traditions, cultural practices, or values"},
	{ID: "culture_02", Domain: DomainCulture, Weight: 1.2, Positive: true,
		Text: "I regularly express my authentic self without excessive conformity pressure",
		Hint: "Being true to yourself vs. wearing masks"},
	{ID: "culture_03", Domain: DomainCulture, Weight: 1.0, Positive: true,
		Text: "I maintain practices or rituals that ground me and give me a sense of identity",
		Hint: "Personal rituals, traditions, or meaningful practices"},
	{ID: "culture_04", Domain: DomainCulture, Weight: 1.0, Positive: true,
		Text: "I feel proud of where I come from and who I am",
		Hint: "Cultural confidence and self-acceptance"},
	// goodGovernance
	{ID: "gov_01", Domain: DomainGovernance, Weight: 1.2, Positive: true,
		Text: "I make my own decisions and feel in control of my life direction",
		Hint: "Personal agency and autonomy"},
	{ID: "gov_02", Domain: DomainGovernance, Weight: 1.0, Positive: true,
		Text: "I set and maintain healthy boundaries with others",
		Hint: "Can say no when needed, protect your time and energy"},
	{ID: "gov_03", Domain: DomainGovernance, Weight: 1.0, Positive: true,
		Text: "I take responsibility for my choices and their consequences",
		Hint: "Ownership vs. victim mentality"},
	{ID: "gov_04", Domain: DomainGovernance, Weight: 1.0, Positive: true,
		Text: "I have clear values and principles that guide my decisions",
		Hint: "Internal compass for decision-making"},
	{ID: "gov_05", Domain: DomainGovernance, Weight: 0.8, Positive: true,
		Text: "I manage my personal affairs effectively (finances, tasks, commitments)",
		Hint: "Self-management and organization"},
	// communityVitality
	{ID: "community_01", Domain: DomainCommunity, Weight: 1.2, Positive: true,
		Text: "I have close relationships where I feel understood and supported",
		Hint: "Quality over quantity in relationships"},
	{ID: "community_02", Domain: DomainCommunity, Weight: 1.0, Positive: true,
		Text: "I regularly connect with friends, family, or community members",
		Hint: "Frequency and consistency of social connection"},
	{ID: "community_03", Domain: DomainCommunity, Weight: 1.0, Positive: true,
		Text: "I feel like I belong to one or more communities (work, hobby, location, etc.)",
		Hint: "Sense of belonging and social identity"},
	{ID: "community_04", Domain: DomainCommunity, Weight: 0.8, Positive: true,
		Text: "I contribute to or help others in my community when I can",
		Hint: "Giving back and social contribution"},
	// ecologicalAwareness
	{ID: "eco_01", Domain: DomainEcology, Weight: 1.0, Positive: true,
		Text: "I regularly spend time in nature or natural environments",
		Hint: "Connection to the natural world"},
	{ID: "eco_02", Domain: DomainEcology, Weight: 1.2, Positive: true,
		Text: "I make environmentally conscious choices in my daily life",
		Hint: "Waste reduction, sustainable consumption, energy use"},
	{ID: "eco_03", Domain: DomainEcology, Weight: 1.0, Positive: true,
		Text: "I feel aware of my environmental impact and try to minimize it",
		Hint: "Ecological consciousness and responsibility"},
	{ID: "eco_04", Domain: DomainEcology, Weight: 0.8, Positive: true,
		Text: "I stay informed about environmental issues that matter to me",
		Hint: "Environmental awareness and education"},
	// livingStandards
	{ID: "living_01", Domain: DomainLiving, Weight: 1.2, Positive: true,
		Text: "I have enough financial resources to meet my basic needs comfortably",
		Hint: "Housing, food, utilities, transportation"},
	{ID: "living_02", Domain: DomainLiving, Weight: 1.2, Positive: true,
		Text: "I feel financially secure and not constantly worried about money",
		Hint: "Financial stress vs. financial peace"},
	{ID: "living_03", Domain: DomainLiving, Weight: 1.0, Positive: true,
		Text: "I have some savings or financial buffer for unexpected expenses",
		Hint: "Emergency fund and financial resilience"},
	{ID: "living_04", Domain: DomainLiving, Weight: 1.0, Positive: true,
		Text: "My living conditions (home, environment) support my well-being",
		Hint: "Safe, comfortable, and adequate housing"},
}

// Questions returns the full bank in assessment order.
func Questions() []Question {
	return append([]Question(nil), questionBank...)
}

func QuestionsForDomain(d DomainID) []Question {
	var out []Question
	for _, q := range questionBank {
		if q.Domain == d {
			out = append(out, q)
		}
	}
	return out
}

func LookupQuestion(id string) (Question, bool) {
	for _, q := range questionBank {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

type AssessmentResponse struct {
	QuestionID string `json:"questionId" yaml:"questionId"`
	Value      int    `json:"value" yaml:"value"`
}

// LikertToScore maps 1..5 onto 0..100, inverting negatively framed items.
func LikertToScore(value int, positive bool) int {
	raw := (value - 1) * 25
	if !positive {
		return 100 - raw
	}
	return raw
}

// ScoreAssessment computes a weighted mean score for every domain from the
// answered questions. Domains without answers score 50. Responses for
// unknown question ids are ignored; Likert bounds are the caller's concern.
func ScoreAssessment(responses []AssessmentResponse) map[DomainID]int {
	type acc struct{ sum, weight float64 }
	sums := make(map[DomainID]*acc, len(DomainOrder))
	for _, r := range responses {
		q, ok := LookupQuestion(r.QuestionID)
		if !ok {
			continue
		}
		a := sums[q.Domain]
		if a == nil {
			a = &acc{}
			sums[q.Domain] = a
		}
		a.sum += float64(LikertToScore(r.Value, q.Positive)) * q.Weight
		a.weight += q.Weight
	}

	scores := make(map[DomainID]int, len(DomainOrder))
	for _, id := range DomainOrder {
		a := sums[id]
		if a == nil || a.weight == 0 {
			scores[id] = DefaultDomainScore
			continue
		}
		scores[id] = int(math.Round(a.sum / a.weight))
	}
	return scores
}

// LevelFromScores derives the starting level from the mean domain score.
func LevelFromScores(scores map[DomainID]int) int {
	if len(scores) == 0 {
		return 1
	}
	sum := 0
	for _, id := range DomainOrder {
		v, ok := scores[id]
		if !ok {
			v = DefaultDomainScore
		}
		sum += v
	}
	mean := float64(sum) / float64(len(DomainOrder))
	return clamp(int(math.Floor(mean/10))+1, 1, MaxStartingLevel)
}

// AssessmentSession collects answers before they are turned into a character.
// Answering a question twice replaces the earlier answer.
type AssessmentSession struct {
	responses []AssessmentResponse
	index     map[string]int
	finalized bool
}

func NewAssessmentSession() *AssessmentSession {
	return &AssessmentSession{index: make(map[string]int)}
}

// Answer records value for questionID.
func (a *AssessmentSession) Answer(questionID string, value int) error {
	if a.finalized {
		return ErrAssessmentFinalized
	}
	questionID = strings.TrimSpace(questionID)
	if _, ok := LookupQuestion(questionID); !ok {
		return NotFoundError{Kind: "question", ID: questionID}
	}
	if value < LikertMin || value > LikertMax {
		return fmt.Errorf("answer for %s must be between %d and %d, got %d", questionID, LikertMin, LikertMax, value)
	}
	if i, ok := a.index[questionID]; ok {
		a.responses[i].Value = value
		return nil
	}
	a.index[questionID] = len(a.responses)
	a.responses = append(a.responses, AssessmentResponse{QuestionID: questionID, Value: value})
	return nil
}

func (a *AssessmentSession) Responses() []AssessmentResponse {
	return append([]AssessmentResponse(nil), a.responses...)
}

// Progress reports how many questions of the bank have an answer.
func (a *AssessmentSession) Progress() (answered, total int) {
	return len(a.responses), len(questionBank)
}

// Next returns the first unanswered question in bank order.
func (a *AssessmentSession) Next() (Question, bool) {
	for _, q := range questionBank {
		if _, ok := a.index[q.ID]; !ok {
			return q, true
		}
	}
	return Question{}, false
}

func (a *AssessmentSession) Finalized() bool { return a.finalized }

// FinalizeAssessment turns the session into the character's domains, level
// and profile. It is also the retake path: scores and level are replaced,
// everything else is kept. A session can be finalized once.
func (e *Engine) FinalizeAssessment(name string, session *AssessmentSession) (*Outcome, error) {
	if session == nil {
		return nil, fmt.Errorf("finalize assessment: nil session")
	}
	if session.finalized {
		return nil, ErrAssessmentFinalized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultHeroName
	}

	e.begin()
	s := e.state
	scores := ScoreAssessment(session.responses)
	for _, id := range DomainOrder {
		d := s.Domain(id)
		d.Score = clamp(scores[id], 0, MaxDomainScore)
		d.Level = d.Score/10 + 1
		d.XP = 0
	}
	level := LevelFromScores(scores)
	s.Level = level
	s.XP = 0
	s.MaxHP = BaseMaxHP + level*LevelUpHPBonus
	s.HP = s.MaxHP

	created := e.now()
	if s.Profile != nil && !s.Profile.CreatedAt.IsZero() {
		created = s.Profile.CreatedAt
	}
	s.Profile = &CharacterProfile{
		Name:               name,
		CreatedAt:          created,
		AssessmentComplete: true,
		Responses:          session.Responses(),
	}
	session.finalized = true

	msg := fmt.Sprintf("%s begins at level %d", name, level)
	e.emit(Event{Kind: EventCharacterCreated, Message: msg, Level: level})
	e.logActivity(Activity{Category: ActivityAssessment, Description: msg})
	return e.finish(), nil
}
