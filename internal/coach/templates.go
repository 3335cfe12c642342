package coach

import "liferpg/internal/engine"

type template struct {
	name       string
	difficulty engine.Difficulty
	xp, gold   int
}

var offlineTemplates = map[engine.DomainID][]template{
	engine.DomainPsychological: {
		{"Meditate for 10 minutes three days this week", engine.DifficultyEasy, 30, 10},
		{"Write down three things you are grateful for each night", engine.DifficultyEasy, 25, 10},
		{"Spend an evening fully offline", engine.DifficultyMedium, 40, 15},
	},
	engine.DomainHealth: {
		{"Go for a 30 minute walk on four days", engine.DifficultyMedium, 40, 15},
		{"Be in bed by 11pm for five nights", engine.DifficultyMedium, 50, 20},
		{"Cook three healthy meals at home", engine.DifficultyEasy, 30, 10},
	},
	engine.DomainTimeUse: {
		{"Plan tomorrow every evening this week", engine.DifficultyEasy, 25, 10},
		{"Block two hours for a hobby you enjoy", engine.DifficultyEasy, 30, 10},
		{"Finish work on time three days in a row", engine.DifficultyMedium, 45, 20},
	},
	engine.DomainEducation: {
		{"Read for 20 minutes on five days", engine.DifficultyMedium, 40, 15},
		{"Complete one lesson of an online course", engine.DifficultyEasy, 30, 10},
		{"Practice a skill you are building for one hour", engine.DifficultyMedium, 40, 15},
	},
	engine.DomainCulture: {
		{"Cook a family or traditional recipe", engine.DifficultyEasy, 30, 10},
		{"Visit a museum, concert or cultural event", engine.DifficultyMedium, 40, 20},
		{"Spend an hour on a creative practice", engine.DifficultyEasy, 25, 10},
	},
	engine.DomainGovernance: {
		{"Write down your top three values and one decision they guide", engine.DifficultyEasy, 30, 10},
		{"Review your budget and pay pending bills", engine.DifficultyMedium, 40, 20},
		{"Say no to one request that drains you", engine.DifficultyMedium, 35, 15},
	},
	engine.DomainCommunity: {
		{"Call a friend or family member you miss", engine.DifficultyEasy, 25, 10},
		{"Share a meal with someone this week", engine.DifficultyEasy, 30, 10},
		{"Volunteer or help a neighbor for an hour", engine.DifficultyMedium, 45, 20},
	},
	engine.DomainEcology: {
		{"Spend an hour outdoors in nature", engine.DifficultyEasy, 30, 10},
		{"Go a week without single-use plastic bags", engine.DifficultyMedium, 40, 15},
		{"Walk or bike instead of driving twice", engine.DifficultyEasy, 30, 10},
	},
	engine.DomainLiving: {
		{"Track every expense for seven days", engine.DifficultyMedium, 40, 15},
		{"Move a small amount into savings", engine.DifficultyEasy, 30, 15},
		{"Declutter and tidy one room at home", engine.DifficultyEasy, 25, 10},
	},
}

// OfflineQuests picks template quests for the weakest domains. The choice
// rotates with the number of quests the character has seen so repeated calls
// vary.
func OfflineQuests(s *engine.CharacterState, count int) []engine.QuestInput {
	ranked := RankDomains(s)
	targets := ranked[:min(weakestDomains, len(ranked))]
	seed := len(s.Quests)

	out := make([]engine.QuestInput, 0, count)
	for i := 0; i < count; i++ {
		d := targets[i%len(targets)].ID
		list := offlineTemplates[d]
		t := list[(seed+i/len(targets))%len(list)]
		out = append(out, engine.QuestInput{
			Name:       t.name,
			Domain:     d,
			Difficulty: t.difficulty,
			XP:         t.xp,
			Gold:       t.gold,
			Source:     engine.QuestOffline,
		})
	}
	return out
}
