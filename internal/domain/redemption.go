package domain

import (
	"strings"
	"time"
)

type Redemption struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	RewardName string    `json:"reward_name"`
	Cost       int       `json:"cost"`
	CreatedAt  time.Time `json:"created_at"`
}

func (r *Redemption) Validate() error {
	switch {
	case r.ID == "":
		return Invalid("id", "required")
	case r.UserID == "":
		return Invalid("user_id", "required")
	case strings.TrimSpace(r.RewardName) == "":
		return Invalid("reward_name", "required")
	case r.Cost <= 0:
		return Invalid("cost", "must be positive")
	}
	return nil
}

type Reward struct {
	Name        string `json:"name"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
}

var rewardCatalog = []Reward{
	{Name: "Digital Plant Care Guide", Cost: 50, Description: "Comprehensive guide to caring for indoor and outdoor plants"},
	{Name: "Eco-Friendly Tips Collection", Cost: 75, Description: "Collection of 100 practical environmental tips"},
	{Name: "Virtual Tree Planting Certificate", Cost: 100, Description: "Plant a virtual tree and get a personalized certificate"},
	{Name: "Quiz Streak Multiplier", Cost: 120, Description: "Double points for next 5 quizzes"},
	{Name: "Environmental Hero Badge", Cost: 150, Description: "Special digital badge for your profile"},
	{Name: "Custom Profile Theme", Cost: 180, Description: "Personalize your profile with custom colors"},
	{Name: "Sustainability Champion Title", Cost: 200, Description: "Exclusive title and profile enhancement"},
	{Name: "Early Access Features", Cost: 250, Description: "Get early access to new platform features"},
	{Name: "Eco Mentor Status", Cost: 300, Description: "Become a mentor and help other users"},
}

// RewardCatalog returns the fixed rewards ordered by cost.
func RewardCatalog() []Reward {
	return append([]Reward(nil), rewardCatalog...)
}

func FindReward(name string) (Reward, bool) {
	for _, r := range rewardCatalog {
		if strings.EqualFold(r.Name, strings.TrimSpace(name)) {
			return r, true
		}
	}
	return Reward{}, false
}
