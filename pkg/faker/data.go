package faker

// =============================================================================
// Identity
// =============================================================================

var firstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Maria", "Daniel", "Nancy", "Matthew",
	"Aisha", "Wei", "Priya", "Carlos", "Fatima", "Lucas", "Yuki", "Olga",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
	"Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
	"Chen", "Patel", "Kim", "Nguyen", "Okafor", "Novak", "Schmidt", "Rossi",
}

var jobLevels = []string{
	"Senior", "Junior", "Lead", "Principal", "Staff", "Associate",
}

var jobFields = []string{
	"Software", "Data", "Product", "Marketing", "Sales",
	"Operations", "Security", "Infrastructure", "Quality", "Research",
}

var jobRoles = []string{
	"Engineer", "Analyst", "Manager", "Designer", "Architect",
	"Consultant", "Developer", "Specialist", "Coordinator", "Strategist",
}

// =============================================================================
// Places
// =============================================================================

var streetNames = []string{
	"Main", "Oak", "Elm", "Park", "Cedar", "Maple", "Pine", "Lake",
	"Hill", "Washington", "Sunset", "River", "Church", "Spring", "Mill", "Highland",
}

var streetSuffixes = []string{
	"St", "Ave", "Blvd", "Ln", "Dr", "Rd", "Way", "Ct", "Pl", "Terrace",
}

type city struct {
	name  string
	state string
}

var cities = []city{
	{"New York", "NY"}, {"Los Angeles", "CA"}, {"Chicago", "IL"}, {"Houston", "TX"},
	{"Phoenix", "AZ"}, {"Philadelphia", "PA"}, {"San Antonio", "TX"}, {"San Diego", "CA"},
	{"Dallas", "TX"}, {"Austin", "TX"}, {"Seattle", "WA"}, {"Denver", "CO"},
	{"Boston", "MA"}, {"Portland", "OR"}, {"Nashville", "TN"}, {"Atlanta", "GA"},
	{"Miami", "FL"}, {"Minneapolis", "MN"}, {"Detroit", "MI"}, {"Columbus", "OH"},
}

var countries = []string{
	"United States", "Canada", "Mexico", "Brazil", "Argentina", "United Kingdom",
	"France", "Germany", "Spain", "Italy", "Netherlands", "Sweden", "Norway",
	"Poland", "Nigeria", "Kenya", "Egypt", "South Africa", "India", "China",
	"Japan", "South Korea", "Vietnam", "Indonesia", "Australia", "New Zealand",
}

// =============================================================================
// Companies and internet
// =============================================================================

var companyPrefixes = []string{
	"Acme", "Globex", "Initech", "Umbrella", "Stark", "Wayne", "Cyberdyne", "Tyrell",
	"Hooli", "Vandelay", "Soylent", "Massive", "Wonka", "Aperture", "Gringotts", "Oscorp",
}

var companySuffixes = []string{
	"Inc", "LLC", "Group", "Corp", "Ltd", "and Sons", "Industries", "Holdings",
}

var emailDomains = []string{
	"example.com", "example.org", "example.net", "mail.test", "mock.io", "demo.org",
}

var topLevelDomains = []string{"com", "net", "org", "io", "info", "biz"}

var colors = []string{
	"Crimson", "Azure", "Emerald", "Ivory", "Coral",
	"Indigo", "Amber", "Jade", "Scarlet", "Turquoise",
	"Lavender", "Maroon", "Teal", "Orchid", "Cyan",
}

// =============================================================================
// Lorem
// =============================================================================

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit",
	"sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore", "et",
	"dolore", "magna", "aliqua", "enim", "ad", "minim", "veniam", "quis",
	"nostrud", "exercitation", "ullamco", "laboris", "nisi", "aliquip", "ex", "ea",
	"commodo", "consequat", "duis", "aute", "irure", "in", "reprehenderit", "voluptate",
	"velit", "esse", "cillum", "fugiat", "nulla", "pariatur", "excepteur", "sint",
}
