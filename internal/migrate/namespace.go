package migrate

// Namespace holds the cross-step mappings built during the migration. It
// is serialized into the restore file so a resumed run sees the same ids
// without re-reading the target database.
type Namespace struct {
	UserByAvatar       map[string]int `yaml:"user_by_avatar"`
	UsersByEmail       map[string]int `yaml:"users_by_email"`
	GroupByLegacyID    map[string]int `yaml:"group_by_legacy_id"`
	CategoryByLegacyID map[string]int `yaml:"category_by_legacy_id"`
	EventByLegacyID    map[string]int `yaml:"event_by_legacy_id"`
	LocationByName     map[string]int `yaml:"location_by_name"`
	RoomByLegacyID     map[string]int `yaml:"room_by_legacy_id"`
	ReferenceTypes     map[string]int `yaml:"reference_types"`
	SystemUserID       int            `yaml:"system_user_id"`
	LostFoundCategory  int            `yaml:"lost_found_category"`
}

func NewNamespace() *Namespace {
	return &Namespace{
		UserByAvatar:       map[string]int{},
		UsersByEmail:       map[string]int{},
		GroupByLegacyID:    map[string]int{},
		CategoryByLegacyID: map[string]int{},
		EventByLegacyID:    map[string]int{},
		LocationByName:     map[string]int{},
		RoomByLegacyID:     map[string]int{},
		ReferenceTypes:     map[string]int{},
	}
}
