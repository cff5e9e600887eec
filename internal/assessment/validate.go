package assessment

import "strings"

// validateSections performs all structural checks on a set of sections.
// Returns a *BankError describing every problem found, or nil if valid.
func validateSections(sections []Section) error {
	errs := &BankError{}

	sectionIDs := make(map[string]bool, len(sections))
	questionIDs := make(map[string]bool)
	dimensionSeen := make(map[Dimension]bool)

	for _, sec := range sections {
		if strings.TrimSpace(sec.ID) == "" {
			errs.add(ErrInvalidBank, "section with title %q has an empty id", sec.Title)
		} else if sectionIDs[sec.ID] {
			errs.add(ErrInvalidBank, "duplicate section ID: %q", sec.ID)
		}
		sectionIDs[sec.ID] = true

		for _, q := range sec.Questions {
			validateQuestion(errs, q)

			if questionIDs[q.ID] {
				errs.add(ErrInvalidBank, "duplicate question ID: %q", q.ID)
			}
			questionIDs[q.ID] = true
			if q.Category == CategoryReadiness {
				dimensionSeen[q.Dimension] = true
			}
		}
	}

	// A readiness block that skips a dimension would silently report 0 for it.
	if len(dimensionSeen) > 0 {
		for _, d := range AllDimensions() {
			if !dimensionSeen[d] {
				errs.add(ErrInvalidBank, "dimension %q has no questions", d)
			}
		}
	}

	return errs.orNil()
}

func validateQuestion(errs *BankError, q Question) {
	if strings.TrimSpace(q.ID) == "" {
		errs.add(ErrInvalidBank, "question with text %q has an empty id", q.Text)
		return
	}
	if strings.TrimSpace(q.Text) == "" {
		errs.add(ErrInvalidBank, "question %q: text is empty", q.ID)
	}

	switch q.Type {
	case TypeLikert, TypeScale:
		if len(q.Options) > 0 {
			errs.add(ErrInvalidBank, "question %q: %s questions must not declare options", q.ID, q.Type)
		}
	case TypeMultipleChoice:
		if len(q.Options) < 2 {
			errs.add(ErrInvalidBank, "question %q: multiple-choice needs at least 2 options, got %d", q.ID, len(q.Options))
		}
	case TypeBinary:
		errs.add(ErrUnsupportedType, "question %q: %v %q", q.ID, ErrUnsupportedType, q.Type)
	default:
		errs.add(ErrInvalidBank, "question %q: unknown type %q", q.ID, q.Type)
	}

	switch q.Category {
	case CategoryPsychometric:
		if q.Type != TypeLikert && q.Type != TypeScale {
			errs.add(ErrInvalidBank, "question %q: psychometric questions must be likert or scale", q.ID)
		}
	case CategoryTechnical:
		if q.Type != TypeMultipleChoice {
			errs.add(ErrInvalidBank, "question %q: technical questions must be multiple-choice", q.ID)
		} else if q.CorrectIndex == noCorrectIndex {
			errs.add(ErrInvalidBank, "question %q: correct index is missing", q.ID)
		} else if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			errs.add(ErrInvalidBank, "question %q: correct index %d out of range [0, %d)", q.ID, q.CorrectIndex, len(q.Options))
		}
	case CategoryReadiness:
		if q.Type != TypeLikert && q.Type != TypeScale {
			errs.add(ErrInvalidBank, "question %q: readiness questions must be likert or scale", q.ID)
		}
		if !isDimension(q.Dimension) {
			errs.add(ErrInvalidBank, "question %q: readiness question needs a WISCAR dimension, got %q", q.ID, q.Dimension)
		}
	default:
		errs.add(ErrInvalidBank, "question %q: unknown category %q", q.ID, q.Category)
	}

	if q.Category != CategoryReadiness && q.Dimension != DimensionNone {
		errs.add(ErrInvalidBank, "question %q: only readiness questions carry a dimension", q.ID)
	}
}

func isDimension(d Dimension) bool {
	for _, known := range AllDimensions() {
		if d == known {
			return true
		}
	}
	return false
}
