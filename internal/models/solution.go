package models

import "time"

const (
	SolutionDraft     = "draft"
	SolutionSubmitted = "submitted"
	SolutionInReview  = "in_review"
	SolutionApproved  = "approved"
	SolutionRejected  = "rejected"
)

// Solution is a proposal submitted against exactly one Challenge.
type Solution struct {
	ID                      uint       `gorm:"primaryKey" json:"id"`
	Title                   string     `gorm:"size:500;not null" json:"title"`
	Description             string     `gorm:"type:text;not null" json:"description"`
	Axis                    string     `gorm:"size:100" json:"axis"`
	Benefits                string     `gorm:"type:text" json:"benefits"`
	ChallengeID             uint       `gorm:"not null;index" json:"challenge_id"`
	CreatedBy               *uint      `gorm:"index" json:"created_by"`
	TeamName                string     `gorm:"size:255" json:"team_name"`
	ParticipantType         string     `gorm:"size:100" json:"participant_type"`
	ProblemSolved           string     `gorm:"type:text" json:"problem_solved"`
	ContributionObjectives  string     `gorm:"type:text" json:"contribution_objectives"`
	DirectBeneficiaries     string     `gorm:"type:text" json:"direct_beneficiaries"`
	DetailedOperation       string     `gorm:"type:text" json:"detailed_operation"`
	SolutionDifferentials   string     `gorm:"type:text" json:"solution_differentials"`
	TerritoryReplication    string     `gorm:"type:text" json:"territory_replication"`
	RequiredResources       string     `gorm:"type:text" json:"required_resources"`
	ValidationPrototyping   string     `gorm:"type:text" json:"validation_prototyping"`
	SuccessIndicators       string     `gorm:"type:text" json:"success_indicators"`
	EstablishedPartnerships string     `gorm:"type:text" json:"established_partnerships"`
	SolutionContinuity      string     `gorm:"type:text" json:"solution_continuity"`
	LinkedinLink            string     `gorm:"size:1000" json:"linkedin_link"`
	InstagramLink           string     `gorm:"size:1000" json:"instagram_link"`
	PortfolioLink           string     `gorm:"size:1000" json:"portfolio_link"`
	Attachments             StringList `gorm:"type:text" json:"attachments"`
	Document1URL            string     `gorm:"column:document_1_url;size:1000" json:"document_1_url"`
	Document2URL            string     `gorm:"column:document_2_url;size:1000" json:"document_2_url"`
	Document3URL            string     `gorm:"column:document_3_url;size:1000" json:"document_3_url"`
	Status                  string     `gorm:"size:20;default:submitted;index" json:"status"`
	StatusID                *uint      `gorm:"index" json:"status_id"`
	CreatedAt               time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

func (Solution) TableName() string { return "solutions" }

// SolutionView adds the submitted_by alias expected by clients.
type SolutionView struct {
	Solution
	SubmittedBy *uint `json:"submitted_by"`
}

func (s Solution) View() SolutionView {
	return SolutionView{Solution: s, SubmittedBy: s.CreatedBy}
}

func ValidSolutionStatus(s string) bool {
	switch s {
	case SolutionDraft, SolutionSubmitted, SolutionInReview, SolutionApproved, SolutionRejected:
		return true
	}
	return false
}

// SolutionStatus is an admin-defined label whose message is sent to the
// submitter when assigned with notification enabled.
type SolutionStatus struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SolutionStatus) TableName() string { return "solution_statuses" }
