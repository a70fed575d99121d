package faker

import (
	"fmt"
	mathrand "math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// epoch is the lower bound of unconstrained dates.
var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Faker produces realistic-looking sample values from a seeded stream.
type Faker struct {
	src *mathrand.PCG
	rng *mathrand.Rand
	now func() time.Time
}

// New creates a Faker seeded with seed.
func New(seed uint64) *Faker {
	return NewWithSource(mathrand.NewPCG(seed, 0))
}

// NewWithSource creates a Faker drawing from src. Callers that need a
// random stream shared with the Faker use Rand.
func NewWithSource(src *mathrand.PCG) *Faker {
	return &Faker{
		src: src,
		rng: mathrand.New(src),
		now: time.Now,
	}
}

// Seed resets the stream to a state derived from n.
func (f *Faker) Seed(n int64) {
	f.src.Seed(uint64(n), 0)
}

// Rand returns the random stream backing the Faker.
func (f *Faker) Rand() *mathrand.Rand {
	return f.rng
}

// SetClock overrides the clock used as the upper bound of unconstrained
// dates. A nil clock restores time.Now.
func (f *Faker) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	f.now = now
}

func (f *Faker) pick(items []string) string {
	return items[f.rng.IntN(len(items))]
}

func (f *Faker) digits(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(byte('0' + f.rng.IntN(10)))
	}
	return sb.String()
}

// =============================================================================
// Identity
// =============================================================================

// FirstName returns a given name.
func (f *Faker) FirstName() string {
	return f.pick(firstNames)
}

// LastName returns a family name.
func (f *Faker) LastName() string {
	return f.pick(lastNames)
}

// Name returns a full person name.
func (f *Faker) Name() string {
	return f.FirstName() + " " + f.LastName()
}

// Email returns an address at one of the reserved example domains.
func (f *Faker) Email() string {
	local := strings.ToLower(f.FirstName() + "." + f.LastName())
	return local + strconv.Itoa(f.rng.IntN(1000)) + "@" + f.pick(emailDomains)
}

// PhoneNumber returns a North American style number.
func (f *Faker) PhoneNumber() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", f.rng.IntN(800)+200, f.rng.IntN(900)+100, f.rng.IntN(10000))
}

// Job returns a job title.
func (f *Faker) Job() string {
	return f.pick(jobLevels) + " " + f.pick(jobFields) + " " + f.pick(jobRoles)
}

// Company returns a company name.
func (f *Faker) Company() string {
	return f.pick(companyPrefixes) + " " + f.pick(companySuffixes)
}

// =============================================================================
// Places
// =============================================================================

// StreetAddress returns a house number and street.
func (f *Faker) StreetAddress() string {
	return fmt.Sprintf("%d %s %s", f.rng.IntN(9999)+1, f.pick(streetNames), f.pick(streetSuffixes))
}

// City returns a city name.
func (f *Faker) City() string {
	return cities[f.rng.IntN(len(cities))].name
}

// Country returns a country name.
func (f *Faker) Country() string {
	return f.pick(countries)
}

// Zipcode returns a five digit postal code.
func (f *Faker) Zipcode() string {
	return fmt.Sprintf("%05d", f.rng.IntN(99999)+1)
}

// Address returns a single-line postal address.
func (f *Faker) Address() string {
	c := cities[f.rng.IntN(len(cities))]
	return fmt.Sprintf("%s, %s, %s %s", f.StreetAddress(), c.name, c.state, f.Zipcode())
}

// =============================================================================
// Internet
// =============================================================================

// URL returns an https URL on a made-up host.
func (f *Faker) URL() string {
	return "https://www." + f.pick(loremWords) + f.pick(loremWords) + "." + f.pick(topLevelDomains) + "/"
}

// IPv4 returns a dotted-quad address.
func (f *Faker) IPv4() string {
	return fmt.Sprintf("%d.%d.%d.%d",
		f.rng.IntN(256), f.rng.IntN(256),
		f.rng.IntN(256), f.rng.IntN(256))
}

// IPv6 returns an address in full expanded notation.
func (f *Faker) IPv6() string {
	groups := make([]string, 8)
	for i := range groups {
		groups[i] = fmt.Sprintf("%04x", f.rng.IntN(65536))
	}
	return strings.Join(groups, ":")
}

// UUID returns a version 4 UUID read from the seeded stream.
func (f *Faker) UUID() string {
	id, err := uuid.NewRandomFromReader(randReader{f.rng})
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// randReader adapts a PRNG to io.Reader for uuid.NewRandomFromReader.
type randReader struct {
	rng *mathrand.Rand
}

func (r randReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}

// =============================================================================
// Text
// =============================================================================

// Word returns a lorem word.
func (f *Faker) Word() string {
	return f.pick(loremWords)
}

// Sentence returns a capitalized lorem sentence of four to ten words.
func (f *Faker) Sentence() string {
	n := f.rng.IntN(7) + 4
	words := make([]string, n)
	for i := range words {
		words[i] = f.pick(loremWords)
	}
	words[0] = cases.Title(language.Und).String(words[0])
	return strings.Join(words, " ") + "."
}

// Text returns lorem sentences cut to at most maxChars characters, with
// surrounding whitespace removed.
func (f *Faker) Text(maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	var sb strings.Builder
	for sb.Len() < maxChars {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.Sentence())
	}
	return strings.TrimSpace(sb.String()[:maxChars])
}

// Color returns a color name.
func (f *Faker) Color() string {
	return f.pick(colors)
}

// Boolean returns a coin flip.
func (f *Faker) Boolean() bool {
	return f.rng.IntN(2) == 1
}

// =============================================================================
// Time
// =============================================================================

// Date returns a random calendar day between 1970-01-01 and today.
func (f *Faker) Date() time.Time {
	days := int64(f.now().UTC().Sub(epoch) / (24 * time.Hour))
	if days < 0 {
		days = 0
	}
	return epoch.AddDate(0, 0, int(f.rng.Int64N(days+1)))
}

// DateTime returns a random instant, to the second, between 1970-01-01
// and now.
func (f *Faker) DateTime() time.Time {
	secs := int64(f.now().UTC().Sub(epoch) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return epoch.Add(time.Duration(f.rng.Int64N(secs+1)) * time.Second)
}
