package generator

import (
	"math/rand"

	"github.com/jaswdr/faker"
)

// NameSource produces plausible human first and last names.
type NameSource interface {
	FirstName() string
	LastName() string
}

// fakerNames draws names from the faker person corpus.
type fakerNames struct {
	person faker.Person
}

// NewFakerNames returns a NameSource backed by github.com/jaswdr/faker that
// draws from r, so seeded runs produce the same names.
func NewFakerNames(r *rand.Rand) NameSource {
	f := faker.NewWithSeed(r)
	return &fakerNames{person: f.Person()}
}

func (n *fakerNames) FirstName() string { return n.person.FirstName() }

func (n *fakerNames) LastName() string { return n.person.LastName() }

// builtinNames draws names from the curated lists below.
type builtinNames struct {
	rng *rand.Rand
}

// NewBuiltinNames returns a NameSource backed by the curated name lists.
func NewBuiltinNames(r *rand.Rand) NameSource {
	return &builtinNames{rng: r}
}

func (n *builtinNames) FirstName() string {
	if n.rng.Float32() < 0.5 {
		return MaleGivenNames[n.rng.Intn(len(MaleGivenNames))]
	}
	return FemaleGivenNames[n.rng.Intn(len(FemaleGivenNames))]
}

func (n *builtinNames) LastName() string {
	return Surnames[n.rng.Intn(len(Surnames))]
}

// Surnames is a curated list of surnames.
// Mix of common American surnames from various backgrounds.
var Surnames = []string{
	"Adams", "Anderson", "Baker", "Barnes", "Bell", "Bennett", "Brooks",
	"Brown", "Butler", "Campbell", "Carter", "Chen", "Clark", "Collins",
	"Cooper", "Cruz", "Davis", "Diaz", "Edwards", "Evans", "Fisher",
	"Flores", "Foster", "Garcia", "Gonzalez", "Gray", "Green", "Hall",
	"Harris", "Hayes", "Henderson", "Hernandez", "Hill", "Howard", "Hughes",
	"Jackson", "James", "Jenkins", "Johnson", "Jones", "Kelly", "Kim",
	"King", "Lee", "Lewis", "Long", "Lopez", "Martin", "Martinez",
	"Miller", "Mitchell", "Moore", "Morgan", "Morris", "Murphy", "Nelson",
	"Nguyen", "Parker", "Patterson", "Perez", "Perry", "Peterson", "Phillips",
	"Powell", "Price", "Ramirez", "Reed", "Reyes", "Richardson", "Rivera",
	"Roberts", "Robinson", "Rodriguez", "Rogers", "Ross", "Russell", "Sanchez",
	"Sanders", "Scott", "Simmons", "Smith", "Stewart", "Sullivan", "Taylor",
	"Thomas", "Thompson", "Torres", "Turner", "Walker", "Ward", "Washington",
	"Watson", "White", "Williams", "Wilson", "Wood", "Wright", "Young",
}

// MaleGivenNames is a curated list of male first names.
var MaleGivenNames = []string{
	"Aaron", "Adam", "Adrian", "Alan", "Albert", "Alexander", "Andrew",
	"Anthony", "Arthur", "Benjamin", "Brandon", "Brian", "Bruce", "Carl",
	"Charles", "Christopher", "Daniel", "David", "Dennis", "Donald", "Douglas",
	"Edward", "Eric", "Eugene", "Frank", "Gary", "George", "Gerald",
	"Gregory", "Harold", "Henry", "Jack", "James", "Jason", "Jeffrey",
	"Jeremy", "Jesse", "John", "Jonathan", "Joseph", "Joshua", "Justin",
	"Keith", "Kenneth", "Kevin", "Larry", "Lawrence", "Louis", "Marcus",
	"Mark", "Martin", "Matthew", "Michael", "Nathan", "Nicholas", "Oscar",
	"Patrick", "Paul", "Peter", "Philip", "Ralph", "Raymond", "Richard",
	"Robert", "Roger", "Ronald", "Roy", "Ryan", "Samuel", "Sean",
	"Stephen", "Steven", "Timothy", "Victor", "Vincent", "Walter", "Wayne",
	"William", "Zachary",
}

// FemaleGivenNames is a curated list of female first names.
var FemaleGivenNames = []string{
	"Abigail", "Alice", "Amanda", "Amy", "Andrea", "Angela", "Anna",
	"Barbara", "Betty", "Beverly", "Brenda", "Carol", "Carolyn", "Catherine",
	"Charlotte", "Christina", "Christine", "Cynthia", "Deborah", "Denise", "Diana",
	"Diane", "Dorothy", "Elizabeth", "Emily", "Emma", "Frances", "Gloria",
	"Grace", "Hannah", "Heather", "Helen", "Isabella", "Jacqueline", "Janet",
	"Janice", "Jean", "Jennifer", "Jessica", "Joan", "Joyce", "Judith",
	"Julia", "Julie", "Karen", "Katherine", "Kathleen", "Kathryn", "Kelly",
	"Kimberly", "Laura", "Lauren", "Linda", "Lisa", "Lori", "Louise",
	"Madison", "Margaret", "Maria", "Marie", "Marilyn", "Martha", "Mary",
	"Megan", "Melissa", "Michelle", "Nancy", "Nicole", "Olivia", "Pamela",
	"Patricia", "Rachel", "Rebecca", "Rose", "Ruth", "Samantha", "Sandra",
	"Sara", "Sarah", "Sharon", "Shirley", "Sophia", "Stephanie", "Susan",
	"Teresa", "Theresa", "Tiffany", "Virginia", "Wanda", "Wendy",
}
