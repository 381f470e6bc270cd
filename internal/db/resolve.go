// ABOUTME: Subject identifier resolution by id or name
// ABOUTME: Digit-only names are tried as ids first, then as literal names
package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// SubjectRef identifies a subject either by id or by name. Build one with
// ByID or ByName.
type SubjectRef struct {
	byID bool
	id   int64
	name string
}

// ByID refers to a subject by its numeric id.
func ByID(id int64) SubjectRef {
	return SubjectRef{byID: true, id: id}
}

// ByName refers to a subject by name. A name made only of digits is first
// tried as an id, so a subject literally called "123" is still reachable
// when no subject has id 123.
func ByName(name string) SubjectRef {
	return SubjectRef{name: name}
}

// IsID reports whether the ref was built with ByID.
func (r SubjectRef) IsID() bool {
	return r.byID
}

func (r SubjectRef) String() string {
	if r.byID {
		return strconv.FormatInt(r.id, 10)
	}
	return r.name
}

// ResolveSubject maps ref onto a stored subject. With create set, an
// unknown name is created (the write path); without it, a miss is
// KindNotFound (the read path). A ByID ref is never created.
func (s *Store) ResolveSubject(ctx context.Context, ref SubjectRef, create bool) (SubjectResult, error) {
	var res SubjectResult
	var err error
	if create {
		err = s.runInTx(ctx, func(tx *sql.Tx) error {
			var err error
			res, err = s.resolve(ctx, tx, ref, true)
			return err
		})
	} else {
		// Reads stay off the immediate write lock
		res, err = s.resolve(ctx, s.db, ref, false)
	}
	if err != nil {
		return SubjectResult{}, s.transient(err, "Error resolving subject '%s': %v", ref, err)
	}
	return res, nil
}

// resolve applies the resolution order: integer id, digit string as id,
// digit string as name, then name.
func (s *Store) resolve(ctx context.Context, q querier, ref SubjectRef, create bool) (SubjectResult, error) {
	if ref.byID {
		sub, found, err := s.subjectByID(ctx, q, ref.id)
		if err != nil {
			return SubjectResult{}, err
		}
		if !found {
			return SubjectResult{}, newError(KindNotFound, nil, "Subject with ID %d not found", ref.id)
		}
		return SubjectResult{Subject: sub, Message: "Subject '" + sub.Name + "' found"}, nil
	}

	name := strings.TrimSpace(ref.name)
	if name == "" {
		return SubjectResult{}, newError(KindValidation, nil, "Subject name cannot be empty")
	}

	if isDigits(name) {
		if id, err := strconv.ParseInt(name, 10, 64); err == nil {
			sub, found, err := s.subjectByID(ctx, q, id)
			if err != nil {
				return SubjectResult{}, err
			}
			if found {
				return SubjectResult{Subject: sub, Message: "Subject '" + sub.Name + "' found"}, nil
			}
			s.log.Warn("subject id not found, trying as name", "identifier", name)
		}
	}

	if create {
		sub, created, err := s.ensureSubject(ctx, q, name)
		if err != nil {
			return SubjectResult{}, err
		}
		msg := "Subject '" + sub.Name + "' found"
		if created {
			msg = "Subject '" + sub.Name + "' added successfully"
		}
		return SubjectResult{Subject: sub, Created: created, Message: msg}, nil
	}

	sub, found, err := s.subjectByName(ctx, q, name)
	if err != nil {
		return SubjectResult{}, err
	}
	if !found {
		return SubjectResult{}, newError(KindNotFound, nil, "Subject '%s' not found", name)
	}
	return SubjectResult{Subject: sub, Message: "Subject '" + sub.Name + "' found"}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
