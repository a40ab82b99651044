package match

// Parameter names an exptime can be derived from. DateObsKey and
// TimeObsKey form a split date/time pair; CompositeDateKey carries the
// full timestamp in one parameter.
const (
	DateObsKey       = "DATE-OBS"
	TimeObsKey       = "TIME-OBS"
	CompositeDateKey = "META.OBSERVATION.DATE"
)

// SentinelExptime is returned when no temporal constraint can be derived
// from a flattened match path. It sorts before any real timestamp, so a
// path without a useafter is treated as always already in effect.
const SentinelExptime = "1900-01-01 00:00:00"

// Exptime derives the earliest applicable timestamp for one flattened
// match path as a "YYYY-MM-DD HH:MM:SS" string. A DATE-OBS/TIME-OBS pair
// takes priority over a composite observation date. All timestamps are
// zero-padded, so lexicographic comparison of the results is equivalent
// to temporal comparison; callers rely on that and no date parsing is
// performed anywhere in this package.
func Exptime(flat Flat) string {
	date, hasDate := flat[DateObsKey]
	clock, hasTime := flat[TimeObsKey]
	if hasDate && hasTime {
		return date + " " + clock
	}
	if composite, ok := flat[CompositeDateKey]; ok {
		return composite
	}
	return SentinelExptime
}

// Evaluator computes minimum exptimes for references with respect to a
// rule-mapping context. The minimum over a set of new reference files
// bounds the earliest observation that reprocessing with those files
// could affect.
type Evaluator struct {
	resolver *Resolver
}

// NewEvaluator creates an evaluator using the given resolver.
func NewEvaluator(resolver *Resolver) *Evaluator {
	return &Evaluator{resolver: resolver}
}

// MinExptimeForReference returns the lexicographically smallest exptime
// across all match paths of reference under context. A reference with
// zero match paths yields a NoMatchError: the minimum of an empty
// sequence is undefined.
func (e *Evaluator) MinExptimeForReference(context, reference string) (string, error) {
	paths, err := e.resolver.Resolve(context, reference)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", &NoMatchError{Context: context, Reference: reference}
	}

	min := ""
	for _, flat := range FlattenAll(paths) {
		exptime := Exptime(flat)
		if min == "" || exptime < min {
			min = exptime
		}
	}
	return min, nil
}

// MinExptime returns the minimum of MinExptimeForReference over all given
// references. An empty reference list yields ErrNoReferences.
func (e *Evaluator) MinExptime(context string, references []string) (string, error) {
	if len(references) == 0 {
		return "", ErrNoReferences
	}

	min := ""
	for _, reference := range references {
		exptime, err := e.MinExptimeForReference(context, reference)
		if err != nil {
			return "", err
		}
		if min == "" || exptime < min {
			min = exptime
		}
	}
	return min, nil
}
