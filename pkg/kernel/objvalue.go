package kernel

import "strings"

type VacancyTitle string

type VacancyDescription string

type PayGrade string

type Slug string

func (s Slug) String() string { return string(s) }

type ResponseText string

type BucketURL string

func (b BucketURL) String() string { return string(b) }
func (b BucketURL) IsEmpty() bool  { return string(b) == "" }

// Email is a candidate or subscriber email address.
type Email string

func (e Email) String() string { return string(e) }

// IsValid performs a structural check, not deliverability verification.
func (e Email) IsValid() bool {
	s := strings.TrimSpace(string(e))
	if s == "" {
		return false
	}
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}
	return strings.Contains(parts[1], ".")
}

// PhoneNumber holds a dialable number in international or national format.
type PhoneNumber string

func (p PhoneNumber) String() string { return string(p) }
func (p PhoneNumber) IsEmpty() bool  { return string(p) == "" }

// IsValid accepts an optional leading + followed by 7-15 digits.
func (p PhoneNumber) IsValid() bool {
	s := strings.TrimSpace(string(p))
	s = strings.TrimPrefix(s, "+")
	if len(s) < 7 || len(s) > 15 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
