// Package namegen provides 1860s-flavored procedural names for people,
// businesses, and frontier towns.
package namegen

import "math/rand"

var neutralNames = []string{
	"Ace", "Axel", "Babe", "Bigs", "Biscuit", "Bloomer",
	"Calamity", "Cassidy", "CJ", "Dakota", "Danny", "Dig", "Doc",
	"Dogwood", "Dusty", "Greenie", "Jasper", "Jesse", "Kid",
	"Lucky", "Mack", "Maverick", "Mick", "Pennyless", "Pig-iron",
	"PJ", "Rev", "RJ", "Sasquatch", "Sawhorse", "Slippers",
	"Smokey", "Squid", "Sundance", "Sunny", "Tex", "Toad",
	"Turpentine", "Virgil", "Wally", "Yorkshire", "Zane", "Zero",
}

var feminineNames = []string{
	"Abigail", "Ada", "Agnes", "Alice", "Annie", "Beau", "Bessie",
	"Betty", "Birdie", "Blanche", "Bonnie", "Belle", "Cheyenne",
	"Charlotte", "Cleo", "Clara", "Clementine", "Daisy", "Dolly",
	"Dusty", "Eleanor", "Eliza", "Ermengarde", "Etta", "Fanny",
	"Gillian", "Greta", "Hannah", "Harriet", "Hattie", "Hilde",
	"Hildegarde", "Jesse", "Lillie", "Mabel", "Mae", "Millie",
	"Minnie", "Nettie", "Nora", "Olive", "Pearl", "Sadie", "Sally",
	"Tess", "Tillie", "Violet", "Willa", "Willamina",
}

var masculineNames = []string{
	"Amos", "Barny", "Ben", "Bert", "Bill", "Billy", "Buck", "Butch",
	"Clint", "Clyde", "Cornilius", "Earl", "Eleazar", "Eli", "Emmett",
	"Ezra", "Floyd", "Frank", "Fred", "Gus", "Glenn", "Gill", "Hank",
	"Hezekiah", "Ike", "Isaac", "Jack", "Jeb", "Jed", "Jethro", "Jim",
	"Joe", "John", "James", "Jesse", "Obediah", "Otis", "Ringo",
	"Robert", "Rufus", "Silas", "Tex", "Utah", "Wade", "Wes",
	"William", "Wyatt", "Zeke",
}

var lastNames = []string{
	"Baker", "Black", "Brown", "Carter", "Clark", "Cole", "Collins",
	"Cook", "Cooper", "Davis", "Diaz", "Evans", "Fisher", "Flores",
	"Foster", "Garcia", "Gonzalez", "Gray", "Green", "Hall", "Harris",
	"Hernandez", "Hill", "Howard", "Hughes", "Jackson", "James",
	"Jenkins", "Johnson", "Jones", "King", "Lee", "Lewis", "Long",
	"Lopez", "Martin", "Martinez", "Miller", "Mitchell", "Moore",
	"Morris", "Murphy", "Nelson", "Parker", "Perez", "Perry",
	"Peterson", "Phillips", "Powell", "Price", "Ramirez", "Reed",
	"Reyes", "Reynolds", "Richardson", "Rivera", "Roberts",
	"Robinson", "Rodriguez", "Rogers", "Ross", "Russell", "Sanchez",
	"Sanders", "Scott", "Simmons", "Smith", "Stewart", "Taylor",
	"Thomas", "Thompson", "Torres", "Turner", "Walker", "Ward",
	"Watson", "White", "Williams", "Wilson", "Wood", "Wright", "Young",
}

// FirstName draws a first name from the combined pools.
func FirstName(rng *rand.Rand) string {
	switch rng.Intn(3) {
	case 0:
		return Choice(rng, feminineNames)
	case 1:
		return Choice(rng, masculineNames)
	default:
		return Choice(rng, neutralNames)
	}
}

// LastName draws a surname.
func LastName(rng *rand.Rand) string {
	return Choice(rng, lastNames)
}

// FullName draws a first and last name pair.
func FullName(rng *rand.Rand) (first, last string) {
	return FirstName(rng), LastName(rng)
}

var townFirst = []string{
	"Ratts", "Dry", "Silver", "Copper", "Cold", "Mud", "Sand",
	"Dead", "High", "Broke", "Lone", "Bitter", "Red", "Grey",
	"Wolf", "Crow", "Buzzard", "Coyote", "Cinder", "Gallows",
}

var townSecond = []string{
	"ville", " Creek", " Gulch", " Flats", " Hollow", " Springs",
	" Bluff", " Crossing", " Junction", " Ridge", " Wells", "town",
	" Fork", " Mesa", " Camp",
}

var townWhole = []string{
	"Damnation", "Cornucopia Falls", "Fodder Crick", "Langston",
	"Providence", "Last Chance", "New Canaan", "Perdition",
}

// TownName draws a frontier town name.
func TownName(rng *rand.Rand) string {
	if rng.Float64() < 0.25 {
		return Choice(rng, townWhole)
	}
	return Choice(rng, townFirst) + Choice(rng, townSecond)
}

// Choice picks a uniformly random element of a non-empty slice.
func Choice[T any](rng *rand.Rand, arr []T) T {
	return arr[rng.Intn(len(arr))]
}
