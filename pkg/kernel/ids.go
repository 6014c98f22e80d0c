package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type VacancyID string

func NewVacancyID(id string) VacancyID { return VacancyID(id) }
func (v VacancyID) String() string     { return string(v) }
func (v VacancyID) IsEmpty() bool      { return string(v) == "" }

type ApplicationID string

func NewApplicationID(id string) ApplicationID { return ApplicationID(id) }
func (a ApplicationID) String() string         { return string(a) }
func (a ApplicationID) IsEmpty() bool          { return string(a) == "" }

type InterviewID string

func NewInterviewID(id string) InterviewID { return InterviewID(id) }
func (i InterviewID) String() string       { return string(i) }
func (i InterviewID) IsEmpty() bool        { return string(i) == "" }

type SubscriberID string

func NewSubscriberID(id string) SubscriberID { return SubscriberID(id) }
func (s SubscriberID) String() string        { return string(s) }
func (s SubscriberID) IsEmpty() bool         { return string(s) == "" }

type RequirementID string

func NewRequirementID(id string) RequirementID { return RequirementID(id) }
func (r RequirementID) String() string         { return string(r) }
func (r RequirementID) IsEmpty() bool          { return string(r) == "" }

type LocationID string

func NewLocationID(id string) LocationID { return LocationID(id) }
func (l LocationID) String() string      { return string(l) }
func (l LocationID) IsEmpty() bool       { return string(l) == "" }

type TownID string

func NewTownID(id string) TownID { return TownID(id) }
func (t TownID) String() string  { return string(t) }
func (t TownID) IsEmpty() bool   { return string(t) == "" }

type BursaryID string

func NewBursaryID(id string) BursaryID { return BursaryID(id) }
func (b BursaryID) String() string     { return string(b) }
func (b BursaryID) IsEmpty() bool      { return string(b) == "" }

type BursaryApplicationID string

func NewBursaryApplicationID(id string) BursaryApplicationID { return BursaryApplicationID(id) }
func (b BursaryApplicationID) String() string                { return string(b) }
func (b BursaryApplicationID) IsEmpty() bool                 { return string(b) == "" }

type NotificationID string

func NewNotificationID(id string) NotificationID { return NotificationID(id) }
func (n NotificationID) String() string          { return string(n) }
func (n NotificationID) IsEmpty() bool           { return string(n) == "" }

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func (j JobID) String() string { return string(j) }
func (j JobID) IsEmpty() bool  { return string(j) == "" }
