package notification

import (
	"fmt"
	"time"
)

// Templates renders the outbound message copy. Organisation and BaseURL come
// from configuration so the copy never hard-codes a deployment.
type Templates struct {
	Organisation string
	BaseURL      string
}

// NewVacancySubject is the subject line of the subscriber fan-out email.
func (t Templates) NewVacancySubject(title string) string {
	return fmt.Sprintf("New Vacancy: %s", title)
}

// NewVacancyBody is the body of the subscriber fan-out email.
func (t Templates) NewVacancyBody(title, slug string, deadline time.Time) string {
	return fmt.Sprintf(
		"Check out our new vacancy: %s. Deadline: %s.\n\nView and apply at %s/vacancies/%s\n\nYou receive this email because you subscribed to vacancy alerts. Unsubscribe at %s/subscriptions.",
		title, deadline.Format("02 January 2006"), t.BaseURL, slug, t.BaseURL)
}

// ApplicationReceivedSubject is the subject of the submission acknowledgement.
func (t Templates) ApplicationReceivedSubject(vacancyTitle string) string {
	return fmt.Sprintf("%s Application Received", vacancyTitle)
}

// ApplicationReceivedBody acknowledges a new application by email.
func (t Templates) ApplicationReceivedBody(applicantName, vacancyTitle string) string {
	return fmt.Sprintf(
		"Dear %s,\n\nWe appreciate the time and effort you invested in your application for the %s role at %s. We will communicate in due course whether your application has been successful or not.\n\nBest regards,\n%s Recruitment",
		applicantName, vacancyTitle, t.Organisation, t.Organisation)
}

// ApplicationReceivedSMS acknowledges a new application by text message.
func (t Templates) ApplicationReceivedSMS(vacancyTitle string) string {
	return fmt.Sprintf(
		"Thank you for submitting your application for the %s opportunity at %s. We acknowledge receipt of your application and will carefully assess your qualifications. You will be notified once the review process has been completed.",
		vacancyTitle, t.Organisation)
}

// ApplicationStatusSubject is the subject of a review outcome email.
func (t Templates) ApplicationStatusSubject(vacancyTitle string) string {
	return fmt.Sprintf("%s Application Status", vacancyTitle)
}

// ApplicationAcceptedBody tells an applicant they were shortlisted.
func (t Templates) ApplicationAcceptedBody(applicantName, vacancyTitle string) string {
	return fmt.Sprintf(
		"Dear %s,\n\nWe appreciate the time and effort you invested in your application for the %s role at %s. After careful consideration, we are pleased to inform you that you have been shortlisted for the next stage of our selection process.\n\nFurther details regarding the next steps will be communicated to you shortly.\n\nBest regards,\n%s Recruitment",
		applicantName, vacancyTitle, t.Organisation, t.Organisation)
}

// ApplicationRejectedBody tells an applicant they were not selected,
// including the reviewer's comments when given.
func (t Templates) ApplicationRejectedBody(applicantName, vacancyTitle, comments string) string {
	reason := ""
	if comments != "" {
		reason = fmt.Sprintf("\n\nReviewer remarks: %s", comments)
	}
	return fmt.Sprintf(
		"Dear %s,\n\nThank you for your interest in the %s position at %s. After careful consideration, we regret to inform you that we have chosen not to move forward with your application at this time.%s\n\nYour skills and experience are valued, and we encourage you to apply for future opportunities that align with your professional background.\n\nSincerely,\n%s Recruitment",
		applicantName, vacancyTitle, t.Organisation, reason, t.Organisation)
}

// ApplicationAcceptedSMS is the accepted outcome by text message.
func (t Templates) ApplicationAcceptedSMS(vacancyTitle string) string {
	return fmt.Sprintf(
		"Your application for the %s opportunity at %s has successfully met the minimum criteria for further assessment. We will inform you of the next steps in due course.",
		vacancyTitle, t.Organisation)
}

// ApplicationRejectedSMS is the rejected outcome by text message.
func (t Templates) ApplicationRejectedSMS(vacancyTitle, comments string) string {
	reason := ""
	if comments != "" {
		reason = fmt.Sprintf(" Reviewer remarks: %s.", comments)
	}
	return fmt.Sprintf(
		"Thank you for your application for the %s opportunity at %s. After a thorough review, we regret to inform you that your application does not meet the minimum criteria.%s We encourage you to apply for future opportunities.",
		vacancyTitle, t.Organisation, reason)
}

// InterviewSubject is the subject of the interview invitation email.
func (t Templates) InterviewSubject(vacancyTitle string) string {
	return fmt.Sprintf("%s Application Interview", vacancyTitle)
}

// InterviewBody invites an applicant to an interview, with the link the
// applicant uses to respond to the invitation.
func (t Templates) InterviewBody(applicantName, vacancyTitle, interviewID string, scheduleDatetime time.Time) string {
	return fmt.Sprintf(
		"Dear %s,\n\nWe appreciate your interest in the %s position at %s. We are pleased to invite you for an interview to discuss your candidacy further.\n\nInterview date and time: %s.\n\nPlease confirm or decline the invitation at %s/interviews/%s/respond before the response deadline.\n\nBest regards,\n%s Recruitment",
		applicantName, vacancyTitle, t.Organisation,
		scheduleDatetime.Format("Monday, 02 January 2006 at 15:04"),
		t.BaseURL, interviewID, t.Organisation)
}

// InterviewSMS points the applicant to the invitation email.
func (t Templates) InterviewSMS(vacancyTitle string) string {
	return fmt.Sprintf(
		"%s invites you for a %s interview, please check your email inbox or spam folder for more information.",
		t.Organisation, vacancyTitle)
}

// BursaryReceivedSubject is the subject of the bursary acknowledgement.
func (t Templates) BursaryReceivedSubject(year string) string {
	return fmt.Sprintf("%s Bursary Application Received", year)
}

// BursaryReceivedBody acknowledges a bursary application.
func (t Templates) BursaryReceivedBody(applicantName, year string) string {
	return fmt.Sprintf(
		"Dear %s,\n\nWe acknowledge receipt of your application for the %s bursary programme at %s. Your application and supporting documents will be carefully assessed, and you will be notified of the outcome once the review process has been completed.\n\nBest regards,\n%s Financial Assistance",
		applicantName, year, t.Organisation, t.Organisation)
}

// BursarySubject is the subject of the bursary outcome email.
func (t Templates) BursarySubject(year string) string {
	return fmt.Sprintf("%s Bursary Application Status", year)
}

// BursaryAcceptedBody tells a bursary applicant they were successful.
func (t Templates) BursaryAcceptedBody(applicantName, year string) string {
	return fmt.Sprintf(
		"Dear %s,\n\nWe are pleased to inform you that your application for the %s bursary programme at %s has been approved. Further details regarding the award will be communicated to you shortly.\n\nBest regards,\n%s Financial Assistance",
		applicantName, year, t.Organisation, t.Organisation)
}

// BursaryRejectedBody tells a bursary applicant they were unsuccessful.
func (t Templates) BursaryRejectedBody(applicantName, year string) string {
	return fmt.Sprintf(
		"Dear %s,\n\nThank you for your application for the %s bursary programme at %s. After careful consideration, we regret to inform you that your application was not successful. We encourage you to apply again in future cycles.\n\nSincerely,\n%s Financial Assistance",
		applicantName, year, t.Organisation, t.Organisation)
}

// BursaryOutcomeSMS is the bursary outcome by text message.
func (t Templates) BursaryOutcomeSMS(year, status string) string {
	if status == "accepted" {
		return fmt.Sprintf("Your %s bursary application at %s has been approved. Please check your email for further details.", year, t.Organisation)
	}
	return fmt.Sprintf("Your %s bursary application at %s was not successful. Please check your email for further details.", year, t.Organisation)
}
