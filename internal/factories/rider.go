package factories

import (
	"strings"
	"time"

	"github.com/ardillaCHIKI/App2-taxi/internal/models"
	"github.com/lucsky/cuid"
)

type RiderFactory struct{}

func (rf *RiderFactory) CreateRider(config *models.Config) *models.Rider {
	now := time.Now()

	return &models.Rider{
		ID:         cuid.New(),
		Identity:   randomIdentity(),
		Name:       fake.Person().Name(),
		CardNumber: randomCardNumber(),
		Location:   randomCityLocation(config),
		JoinDate:   fake.Time().TimeBetween(now.AddDate(-1, 0, 0), now),
		Status:     models.StatusActive,
	}
}

// randomCardNumber generates sixteen digits grouped in fours.
func randomCardNumber() string {
	var groups []string
	for g := 0; g < 4; g++ {
		var sb strings.Builder
		for i := 0; i < 4; i++ {
			sb.WriteByte(byte('0' + fake.IntBetween(0, 9)))
		}
		groups = append(groups, sb.String())
	}
	return strings.Join(groups, " ")
}
