package usecase

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/xavierca1/ligue-prospector/internal/entity"
)

const DemoLeadCount = 50

var demoStreets = []string{
	"Oak", "Maple", "Cedar", "Pine", "Elm", "Birch", "Walnut", "Willow",
	"Hickory", "Magnolia", "Cherry", "Peach", "Dogwood", "Spruce", "Poplar",
	"Ash", "Cypress", "Juniper", "Redwood", "Sycamore", "Chestnut", "Hemlock",
	"Cottonwood", "Aspen", "Beech", "Alder", "Sequoia", "Holly", "Laurel", "Ivy",
	"Hawthorn", "Mesquite", "Mulberry", "Olive", "Persimmon", "Tamarack", "Yew",
	"Linden", "Buckeye", "Palmetto", "Sassafras", "Catalpa", "Mimosa", "Locust",
	"Sumac", "Sweetgum", "Tulip", "Basswood", "Hackberry", "Boxelder",
}

var demoFirstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Barbara", "William", "Elizabeth", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Christopher", "Lisa", "Daniel", "Nancy",
	"Matthew", "Betty", "Anthony", "Margaret", "Mark", "Sandra", "Donald", "Ashley",
	"Steven", "Kimberly", "Paul", "Emily", "Andrew", "Donna", "Joshua", "Michelle",
	"Kenneth", "Dorothy", "Kevin", "Carol", "Brian", "Amanda", "George", "Melissa",
	"Timothy", "Deborah",
}

var demoLastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker",
	"Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
	"Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell",
	"Carter", "Roberts",
}

const demoEmailTemplate = "Dear %s,\n\n" +
	"I noticed you've owned your property at %d %s St for %d years. With approximately %d%% equity, your property is an excellent investment.\n\n" +
	"I'm a local real estate investor interested in making you a fair cash offer. This would be a quick, hassle-free transaction with no agent commissions.\n\n" +
	"Would you be open to a brief conversation? I'd love to discuss the possibilities.\n\n" +
	"Best regards,\nYour Real Estate Partner"

const demoSMSTemplate = "Hi %s! I'm interested in your property on %s St. Would you consider a cash offer? Reply YES to learn more."

// DemoLeads synthesizes DemoLeadCount leads for zip. Names and streets cycle
// through fixed lists; numbers are drawn from rnd.
func DemoLeads(zip string, rnd *rand.Rand) []entity.Lead {
	leads := make([]entity.Lead, 0, DemoLeadCount)
	for i := 0; i < DemoLeadCount; i++ {
		first := demoFirstNames[i%len(demoFirstNames)]
		last := demoLastNames[i%len(demoLastNames)]
		street := demoStreets[i%len(demoStreets)]

		equity := int(math.Round(50 + rnd.Float64()*50))
		years := int(math.Round(7 + rnd.Float64()*25))
		streetNum := 100 + rnd.Intn(9900)
		phone := fmt.Sprintf("(%d) %d-%04d", 200+rnd.Intn(800), 200+rnd.Intn(800), rnd.Intn(10000))
		email := strings.ToLower(first) + "." + strings.ToLower(last) + "@example.com"

		lead := entity.NewLead(zip, entity.Property{
			Address:       fmt.Sprintf("%d %s St, %s", streetNum, street, zip),
			OwnerName:     last + ", " + first,
			OwnerPhone:    &phone,
			OwnerEmail:    &email,
			EquityPercent: equity,
			YearsOwned:    years,
		},
			entity.StringPtr(fmt.Sprintf(demoEmailTemplate, first, streetNum, street, years, equity)),
			entity.StringPtr(fmt.Sprintf(demoSMSTemplate, first, street)),
		)
		leads = append(leads, lead)
	}
	return leads
}
