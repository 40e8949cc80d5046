// internal/vocab/vocab.go

// Package vocab scans a canonical batch for the distinct free-text taxonomy
// terms it uses and reports which ones need alias mappings. The report is
// advisory only; it never blocks an import.
package vocab

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jibtech/boardbase/internal/schema"
)

// Baseline taxonomy values expected to exist in the store. Anything outside
// these sets is flagged as a warning for operator review.
var (
	BaselineAbilityLevels = map[string]struct{}{
		"Beginner":     {},
		"Intermediate": {},
		"Advanced":     {},
		"Expert":       {},
	}
	BaselineTerrainTypes = map[string]struct{}{
		"Freestyle":    {},
		"Freeride":     {},
		"All-Mountain": {},
	}
)

// Report holds the distinct taxonomy terms a batch actually uses, sorted,
// plus the ability/terrain values that fall outside the baselines.
type Report struct {
	Brand       string
	TotalBoards int
	ScrapedAt   time.Time

	Shapes        []string
	Profiles      []string
	Responses     []string
	AbilityLevels []string
	TerrainTypes  []string

	UnknownAbilityLevels []string
	UnknownTerrainTypes  []string
}

// Analyze collects the distinct values per aliasable category across the
// envelope's boards.
func Analyze(env *schema.ScrapeEnvelope) *Report {
	shapes := make(map[string]struct{})
	profiles := make(map[string]struct{})
	responses := make(map[string]struct{})
	abilities := make(map[string]struct{})
	terrains := make(map[string]struct{})

	for i := range env.Boards {
		board := &env.Boards[i]
		if board.ShapeType != "" {
			shapes[board.ShapeType] = struct{}{}
		}
		if board.ProfileType != "" {
			profiles[board.ProfileType] = struct{}{}
		}
		if board.Response != "" {
			responses[board.Response] = struct{}{}
		}
		for _, level := range board.AbilityLevels {
			abilities[level] = struct{}{}
		}
		for _, terrain := range board.TerrainTypes {
			terrains[terrain] = struct{}{}
		}
	}

	report := &Report{
		Brand:         env.Brand,
		TotalBoards:   env.TotalBoards,
		ScrapedAt:     env.ScrapedAt,
		Shapes:        sortedKeys(shapes),
		Profiles:      sortedKeys(profiles),
		Responses:     sortedKeys(responses),
		AbilityLevels: sortedKeys(abilities),
		TerrainTypes:  sortedKeys(terrains),
	}

	for _, level := range report.AbilityLevels {
		if _, ok := BaselineAbilityLevels[level]; !ok {
			report.UnknownAbilityLevels = append(report.UnknownAbilityLevels, level)
		}
	}
	for _, terrain := range report.TerrainTypes {
		if _, ok := BaselineTerrainTypes[terrain]; !ok {
			report.UnknownTerrainTypes = append(report.UnknownTerrainTypes, terrain)
		}
	}

	return report
}

// StandardizeName converts a scraped label to standard_name form:
// lowercase, spaces and hyphens as underscores.
func StandardizeName(name string) string {
	return strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToLower(name))
}

// Write renders the human-readable analysis banner.
func (r *Report) Write(w io.Writer) {
	line := strings.Repeat("=", 80)

	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "DATA ANALYSIS - Unique Values Found")
	fmt.Fprintln(w, line)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Brand: %s\n", r.Brand)
	fmt.Fprintf(w, "Total boards: %d\n", r.TotalBoards)
	fmt.Fprintf(w, "Scraped at: %s\n", r.ScrapedAt.Format(time.RFC3339))

	if len(r.UnknownAbilityLevels) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "WARNING: Non-standard ability levels found:")
		for _, val := range r.UnknownAbilityLevels {
			fmt.Fprintf(w, "   - %s (expected: %s)\n", val, baselineList(BaselineAbilityLevels))
		}
	}
	if len(r.UnknownTerrainTypes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "WARNING: Non-standard terrain types found:")
		for _, val := range r.UnknownTerrainTypes {
			fmt.Fprintf(w, "   - %s (expected: %s)\n", val, baselineList(BaselineTerrainTypes))
		}
	}

	writeSection(w, "Shape Types", r.Shapes)
	writeSection(w, "Profile Types", r.Profiles)
	writeSection(w, "Response Types", r.Responses)
	writeSection(w, "Ability Levels", r.AbilityLevels)
	writeSection(w, "Terrain Types", r.TerrainTypes)
}

// WriteSQLSuggestions emits the operator worksheet: a brand insert template,
// per-category alias lists with suggested standard names, example alias
// inserts, and helper queries over the existing taxonomy rows.
func (r *Report) WriteSQLSuggestions(w io.Writer) {
	line := strings.Repeat("=", 80)

	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "SQL GENERATION - Manual Setup Required")
	fmt.Fprintln(w, line)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "-- STEP 1: Create brand (if not exists)")
	fmt.Fprintln(w, "INSERT INTO brands (name, website_url)")
	fmt.Fprintf(w, "VALUES ('%s', '<brand_website_url>')\n", r.Brand)
	fmt.Fprintln(w, "ON CONFLICT (name) DO NOTHING;")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "-- STEP 2: Get the brand ID")
	fmt.Fprintf(w, "SELECT id FROM brands WHERE name = '%s';\n", r.Brand)
	fmt.Fprintln(w, "-- Copy this ID and use it below as <brand_id>")

	fmt.Fprintln(w)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "ALIASES NEEDED - Manual Mapping Required")
	fmt.Fprintln(w, line)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Map each brand-specific term to a standard value, then run the")
	fmt.Fprintln(w, "corresponding insert. Suggested standard names are derived mechanically")
	fmt.Fprintln(w, "and need review.")

	writeAliasMapping(w, "SHAPES", r.Brand, r.Shapes,
		"shape_aliases (shape_id, brand_id, alias_name)", "shapes")
	writeAliasMapping(w, "PROFILES", r.Brand, r.Profiles,
		"profile_aliases (profile_id, brand_id, alias_name)", "profiles")
	writeAliasMapping(w, "RESPONSE TYPES", r.Brand, r.Responses,
		"response_type_aliases (response_type_id, brand_id, alias_name)", "response_types")
	if len(r.TerrainTypes) > 0 {
		writeAliasMapping(w, "TERRAIN TYPES", r.Brand, r.TerrainTypes,
			"terrain_type_aliases (terrain_type_id, brand_id, alias_name)", "terrain_types")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "EXAMPLE: How to create aliases after mapping")
	fmt.Fprintln(w, line)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "-- Example: alias 'Camber' -> standard profile 'camber':")
	fmt.Fprintln(w, "INSERT INTO profile_aliases (profile_id, brand_id, alias_name)")
	fmt.Fprintln(w, "SELECT p.id, '<brand_id>', 'Camber'")
	fmt.Fprintln(w, "FROM profiles p WHERE p.standard_name = 'camber'")
	fmt.Fprintln(w, "ON CONFLICT (brand_id, alias_name) DO NOTHING;")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "-- Example: alias 'All-Mountain' -> terrain type 'All-Mountain':")
	fmt.Fprintln(w, "INSERT INTO terrain_type_aliases (terrain_type_id, brand_id, alias_name)")
	fmt.Fprintln(w, "SELECT t.id, '<brand_id>', 'All-Mountain'")
	fmt.Fprintln(w, "FROM terrain_types t WHERE t.name = 'All-Mountain'")
	fmt.Fprintln(w, "ON CONFLICT (brand_id, alias_name) DO NOTHING;")

	fmt.Fprintln(w)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "HELPFUL QUERIES: View existing standard values")
	fmt.Fprintln(w, line)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "-- View all standard shapes:")
	fmt.Fprintln(w, "SELECT id, standard_name, description FROM shapes ORDER BY standard_name;")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "-- View all standard profiles:")
	fmt.Fprintln(w, "SELECT id, standard_name, description FROM profiles ORDER BY standard_name;")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "-- View all standard response types:")
	fmt.Fprintln(w, "SELECT id, standard_name, description FROM response_types ORDER BY standard_name;")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "-- View all ability levels:")
	fmt.Fprintln(w, "SELECT id, name FROM ability_levels ORDER BY sort_order;")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "-- View all terrain types:")
	fmt.Fprintln(w, "SELECT id, name FROM terrain_types ORDER BY name;")
	fmt.Fprintln(w)
	fmt.Fprintln(w, line)
}

func writeAliasMapping(w io.Writer, title, brand string, values []string, insertTarget, table string) {
	if len(values) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "-- %s: Map these %s terms to standard values\n", title, brand)
	fmt.Fprintf(w, "-- Format: INSERT INTO %s\n", insertTarget)
	fmt.Fprintln(w, "--         SELECT id, '<brand_id>', '<brand_alias>'")
	fmt.Fprintf(w, "--         FROM %s WHERE standard_name = '<standard_name>';\n", table)
	fmt.Fprintln(w)
	for _, val := range values {
		fmt.Fprintf(w, "-- '%s' -> suggested standard_name: '%s'\n", val, StandardizeName(val))
	}
}

func writeSection(w io.Writer, title string, values []string) {
	if len(values) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s (%d) - need aliases:\n", title, len(values))
	for _, val := range values {
		fmt.Fprintf(w, "   - %s\n", val)
	}
}

func baselineList(baseline map[string]struct{}) string {
	return strings.Join(sortedKeys(baseline), ", ")
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
