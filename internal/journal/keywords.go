package journal

import "liferpg/internal/engine"

// domainKeywords lists the folded words that mark a note as relevant to a domain.
var domainKeywords = map[engine.DomainID][]string{
	engine.DomainPsychological: {
		"anxiety", "anxious", "calm", "emotion", "emotions", "feel", "feeling", "gratitude",
		"grateful", "happy", "meditate", "meditated", "meditation", "mindful", "mindfulness",
		"mood", "peace", "stress", "stressed", "therapy",
	},
	engine.DomainHealth: {
		"diet", "doctor", "eat", "energy", "exercise", "fitness", "gym", "health", "healthy",
		"jog", "nutrition", "ran", "run", "running", "sick", "sleep", "slept", "stretch",
		"walk", "walked", "workout", "yoga",
	},
	engine.DomainTimeUse: {
		"balance", "break", "busy", "calendar", "deadline", "focus", "hobby", "leisure",
		"overtime", "plan", "planned", "procrastinate", "procrastinated", "productive",
		"relax", "relaxed", "rest", "routine", "schedule", "time",
	},
	engine.DomainEducation: {
		"book", "books", "class", "course", "learn", "learned", "learning", "lecture",
		"practice", "practiced", "read", "reading", "research", "skill", "skills", "studied",
		"study", "tutorial",
	},
	engine.DomainCulture: {
		"art", "culture", "cultural", "dance", "festival", "heritage", "identity", "language",
		"museum", "music", "painting", "ritual", "tradition", "traditions", "values",
	},
	engine.DomainGovernance: {
		"boundaries", "boundary", "budget", "choice", "decide", "decided", "decision",
		"discipline", "goal", "goals", "organize", "organized", "principles", "responsibility",
		"vote",
	},
	engine.DomainCommunity: {
		"colleague", "colleagues", "community", "dinner", "family", "friend", "friends",
		"help", "helped", "lonely", "mom", "dad", "neighbor", "neighbors", "party", "team",
		"volunteer", "volunteered",
	},
	engine.DomainEcology: {
		"bike", "climate", "compost", "environment", "forest", "garden", "gardening", "hike",
		"hiking", "nature", "outdoors", "park", "plants", "recycle", "recycled", "sustainable",
		"trees",
	},
	engine.DomainLiving: {
		"bills", "debt", "expense", "expenses", "finance", "finances", "home", "house",
		"income", "job", "money", "paid", "rent", "salary", "savings", "saved", "spent",
	},
}

var positiveWords = []string{
	"accomplished", "amazing", "awesome", "better", "calm", "confident", "energized",
	"enjoyed", "excited", "fantastic", "fun", "glad", "good", "grateful", "great", "happy",
	"hopeful", "inspired", "joy", "love", "loved", "motivated", "peaceful", "progress",
	"proud", "relaxed", "rested", "success", "successful", "wonderful",
}

var negativeWords = []string{
	"angry", "anxious", "awful", "bad", "bored", "depressed", "disappointed", "drained",
	"exhausted", "failed", "failure", "frustrated", "guilty", "hate", "hurt", "lonely",
	"lost", "miserable", "overwhelmed", "sad", "sick", "stressed", "stuck", "terrible",
	"tired", "upset", "worried", "worse", "worst",
}

type wordSet map[string]struct{}

func newWordSet(words []string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) has(w string) bool {
	_, ok := s[w]
	return ok
}
