package dto

type SpaceRequest struct {
	ID           string   `json:"id"`
	SpaceType    string   `json:"spaceType" binding:"required"`
	Size         string   `json:"size"`
	ClutterLevel string   `json:"clutterLevel"`
	Notes        string   `json:"notes"`
	ManualHours  *float64 `json:"manualHours"`
}

type ScheduleDayRequest struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	Hours     float64 `json:"hours"`
}

type CreateJobRequest struct {
	ClientName     string         `json:"clientName" binding:"required"`
	ClientPhone    string         `json:"clientPhone"`
	ClientEmail    string         `json:"clientEmail"`
	ClientAddress  string         `json:"clientAddress"`
	Notes          string         `json:"notes"`
	Spaces         []SpaceRequest `json:"spaces"`
	PreferredDays  []string       `json:"preferredDays"`
	PreferredTimes []string       `json:"preferredTimes"`
	BlockedDays    []string       `json:"blockedDays"`
	PaymentMethod  string         `json:"paymentMethod"`
	DiscountType   string         `json:"discountType"`
	DiscountValue  float64        `json:"discountValue"`
}

// UpdateJobRequest carries a partial update: nil fields are left alone.
type UpdateJobRequest struct {
	ClientName     *string               `json:"clientName"`
	ClientPhone    *string               `json:"clientPhone"`
	ClientEmail    *string               `json:"clientEmail"`
	ClientAddress  *string               `json:"clientAddress"`
	Notes          *string               `json:"notes"`
	Spaces         *[]SpaceRequest       `json:"spaces"`
	PreferredDays  *[]string             `json:"preferredDays"`
	PreferredTimes *[]string             `json:"preferredTimes"`
	BlockedDays    *[]string             `json:"blockedDays"`
	ScheduleDays   *[]ScheduleDayRequest `json:"scheduleDays"`
	PaymentMethod  *string               `json:"paymentMethod"`
	DiscountType   *string               `json:"discountType"`
	DiscountValue  *float64              `json:"discountValue"`
}

type ListJobsRequest struct {
	Status string `form:"status"`
	Active *bool  `form:"active"`
}

type ActualHoursRequest struct {
	Hours float64 `json:"hours"`
}

type FeedbackRequest struct {
	Rating int    `json:"rating" binding:"required"`
	Text   string `json:"text"`
}

type SettingsRequest struct {
	HourlyRate      *float64 `json:"hourlyRate"`
	StripeKey       *string  `json:"stripePublishableKey"`
	EmailServiceID  *string  `json:"emailjsServiceId"`
	EmailTemplateID *string  `json:"emailjsTemplateId"`
	EmailPublicKey  *string  `json:"emailjsPublicKey"`
}

type PhotoRequest struct {
	Type                string `json:"type"` // before (default) or after
	URL                 string `json:"url"`
	OriginalName        string `json:"originalName"`
	DescriptiveFilename string `json:"descriptiveFilename"`
	DriveURL            string `json:"gdriveUrl"`
}

type DriveFolderRequest struct {
	FolderID  string `json:"folderId" binding:"required"`
	FolderURL string `json:"folderUrl"`
}

type CredentialsRequest struct {
	URL     string `json:"url" binding:"required"`
	AnonKey string `json:"anonKey" binding:"required"`
}

type StatsResponse struct {
	TotalJobs      int     `json:"totalJobs"`
	ActiveJobs     int     `json:"activeJobs"`
	CompletedJobs  int     `json:"completedJobs"`
	PaidRevenue    float64 `json:"paidRevenue"`
	OutstandingDue float64 `json:"outstandingDue"`
}
