package source

import "time"

// Legacy object types. Field tags cover both backends: bson for the served
// dump, json for file dumps. Unknown fields are ignored on decode.

type Avatar struct {
	ID              string     `bson:"_id" json:"id"`
	FirstName       string     `bson:"firstName" json:"firstName"`
	Surname         string     `bson:"surName" json:"surName"`
	Email           string     `bson:"email" json:"email"`
	SecondaryEmails []string   `bson:"secondaryEmails" json:"secondaryEmails"`
	Affiliation     string     `bson:"affiliation" json:"affiliation"`
	Phone           string     `bson:"phone" json:"phone"`
	Address         string     `bson:"address" json:"address"`
	Title           string     `bson:"title" json:"title"`
	Timezone        string     `bson:"timezone" json:"timezone"`
	Status          string     `bson:"status" json:"status"`
	MergedInto      string     `bson:"mergedInto" json:"mergedInto"`
	IsAdmin         bool       `bson:"isAdmin" json:"isAdmin"`
	Identities      []Identity `bson:"identities" json:"identities"`
	Favorites       []string   `bson:"favorites" json:"favorites"`
}

// Avatar activation states seen in legacy data.
const (
	AvatarActivated    = "activated"
	AvatarNotConfirmed = "Not confirmed"
)

// Identity kinds seen in legacy data.
const (
	IdentityLocal = "local"
	IdentityLDAP  = "ldap"
	IdentityNice  = "nice"
)

type Identity struct {
	Kind         string     `bson:"kind" json:"kind"`
	Login        string     `bson:"login" json:"login"`
	PasswordHash string     `bson:"passwordHash" json:"passwordHash"`
	LastLogin    *time.Time `bson:"lastLogin" json:"lastLogin"`
}

type Group struct {
	ID        string   `bson:"_id" json:"id"`
	Name      string   `bson:"name" json:"name"`
	Kind      string   `bson:"kind" json:"kind"` // "local" or "ldap"
	MemberIDs []string `bson:"memberIds" json:"memberIds"`
	Obsolete  bool     `bson:"obsolete" json:"obsolete"`
}

// Principal is a legacy reference to an avatar or a group, as found in
// access lists and authorship fields.
type Principal struct {
	Kind        string `bson:"kind" json:"kind"` // "avatar", "group", "ldap_group"
	ID          string `bson:"id" json:"id"`
	Email       string `bson:"email" json:"email"`
	FirstName   string `bson:"firstName" json:"firstName"`
	Surname     string `bson:"surName" json:"surName"`
	Affiliation string `bson:"affiliation" json:"affiliation"`
}

const (
	PrincipalAvatar    = "avatar"
	PrincipalGroup     = "group"
	PrincipalLDAPGroup = "ldap_group"
)

type Category struct {
	ID                     string      `bson:"_id" json:"id"`
	ParentID               string      `bson:"parentId" json:"parentId"`
	Title                  string      `bson:"title" json:"title"`
	Description            string      `bson:"description" json:"description"`
	Order                  int         `bson:"order" json:"order"`
	Protection             int         `bson:"protection" json:"protection"`
	ConfCreationRestricted bool        `bson:"confCreationRestricted" json:"confCreationRestricted"`
	ContactInfo            string      `bson:"contactInfo" json:"contactInfo"`
	Managers               []Principal `bson:"managers" json:"managers"`
}

type ReportNumber struct {
	System string `bson:"system" json:"system"`
	Value  string `bson:"value" json:"value"`
}

type Resource struct {
	ID       string    `bson:"id" json:"id"`
	FileName string    `bson:"fileName" json:"fileName"`
	RepoPath string    `bson:"repoPath" json:"repoPath"`
	OwnerID  string    `bson:"ownerId" json:"ownerId"`
	Created  time.Time `bson:"created" json:"created"`
}

type Material struct {
	ID         string     `bson:"id" json:"id"`
	Title      string     `bson:"title" json:"title"`
	Protection int        `bson:"protection" json:"protection"`
	Resources  []Resource `bson:"resources" json:"resources"`
}

type Contribution struct {
	ID              string      `bson:"id" json:"id"`
	Title           string      `bson:"title" json:"title"`
	Description     string      `bson:"description" json:"description"`
	StartDate       *time.Time  `bson:"startDate" json:"startDate"`
	DurationMinutes int         `bson:"durationMinutes" json:"durationMinutes"`
	Speakers        []Principal `bson:"speakers" json:"speakers"`
	Materials       []Material  `bson:"materials" json:"materials"`
}

type Conference struct {
	ID            string         `bson:"_id" json:"id"`
	CategoryID    string         `bson:"categoryId" json:"categoryId"`
	Title         string         `bson:"title" json:"title"`
	Description   string         `bson:"description" json:"description"`
	Timezone      string         `bson:"timezone" json:"timezone"`
	StartDate     time.Time      `bson:"startDate" json:"startDate"`
	EndDate       time.Time      `bson:"endDate" json:"endDate"`
	CreatorID     string         `bson:"creatorId" json:"creatorId"`
	Protection    int            `bson:"protection" json:"protection"`
	SeriesID      string         `bson:"seriesId" json:"seriesId"`
	Chairs        []Principal    `bson:"chairs" json:"chairs"`
	ReportNumbers []ReportNumber `bson:"reportNumbers" json:"reportNumbers"`
	Materials     []Material     `bson:"materials" json:"materials"`
	Contributions []Contribution `bson:"contributions" json:"contributions"`
}

type Location struct {
	ID        string `bson:"_id" json:"id"`
	Name      string `bson:"name" json:"name"`
	IsDefault bool   `bson:"isDefault" json:"isDefault"`
}

type Room struct {
	ID           string `bson:"_id" json:"id"`
	LocationName string `bson:"locationName" json:"locationName"`
	Name         string `bson:"name" json:"name"`
	Site         string `bson:"site" json:"site"`
	Building     string `bson:"building" json:"building"`
	Floor        string `bson:"floor" json:"floor"`
	Number       string `bson:"number" json:"number"`
	Capacity     int    `bson:"capacity" json:"capacity"`
	OwnerID      string `bson:"ownerId" json:"ownerId"`
	IsReservable bool   `bson:"isReservable" json:"isReservable"`
}

type Reservation struct {
	ID            string `bson:"_id" json:"id"`
	RoomID        string `bson:"roomId" json:"roomId"`
	StartDT       string `bson:"startDT" json:"startDT"`
	EndDT         string `bson:"endDT" json:"endDT"`
	RepeatUnit    int    `bson:"repeatUnit" json:"repeatUnit"`
	RepeatStep    int    `bson:"repeatStep" json:"repeatStep"`
	BookedForName string `bson:"bookedForName" json:"bookedForName"`
	Reason        string `bson:"reason" json:"reason"`
	CreatorID     string `bson:"creatorId" json:"creatorId"`
	IsCancelled   bool   `bson:"isCancelled" json:"isCancelled"`
	IsRejected    bool   `bson:"isRejected" json:"isRejected"`
}

// Settings is the single "main" record of the settings collection, the
// legacy global configuration object.
type Settings struct {
	ID           string `bson:"_id" json:"id"`
	Title        string `bson:"title" json:"title"`
	Organisation string `bson:"organisation" json:"organisation"`
	Timezone     string `bson:"timezone" json:"timezone"`
	Lang         string `bson:"lang" json:"lang"`
	AdminEmails  string `bson:"adminEmails" json:"adminEmails"`
}

type Domain struct {
	ID           string   `bson:"_id" json:"id"`
	Name         string   `bson:"name" json:"name"`
	NetworkMasks []string `bson:"networkMasks" json:"networkMasks"`
}

type NewsItem struct {
	ID      string    `bson:"_id" json:"id"`
	Title   string    `bson:"title" json:"title"`
	Content string    `bson:"content" json:"content"`
	Created time.Time `bson:"created" json:"created"`
}
