package api

// EmbyUser пользователь на сервере Emby
type EmbyUser struct {
	ID                    string `json:"id" yaml:"id"`
	Name                  string `json:"name" yaml:"name"`
	LastLoginDate         string `json:"last_login_date" yaml:"last_login_date"`
	LastActivityDate      string `json:"last_activity_date" yaml:"last_activity_date"`
	HasPassword           bool   `json:"has_password" yaml:"has_password"`
	HasConfiguredPassword bool   `json:"has_configured_password" yaml:"has_configured_password"`
}

// EmbySyncResult итог синхронизации пользователей Emby
type EmbySyncResult struct {
	SyncCount int `json:"sync_count" yaml:"sync_count"`
}

// ServerURLResponse адрес сервера Emby
type ServerURLResponse struct {
	ServerURL string `json:"server_url" yaml:"server_url"`
}

// MediaLibrary медиатека Emby. Views API отдает Id, VirtualFolders - ItemId.
type MediaLibrary struct {
	ID              string   `json:"Id,omitempty" yaml:"id,omitempty"`
	ItemID          string   `json:"ItemId,omitempty" yaml:"item_id,omitempty"`
	Name            string   `json:"Name" yaml:"name"`
	CollectionType  string   `json:"CollectionType" yaml:"collection_type"`
	PrimaryImageTag string   `json:"PrimaryImageTag,omitempty" yaml:"primary_image_tag,omitempty"`
	Locations       []string `json:"Locations,omitempty" yaml:"locations,omitempty"`
}

// LibraryID возвращает идентификатор медиатеки независимо от источника
func (l MediaLibrary) LibraryID() string {
	if l.ID != "" {
		return l.ID
	}
	return l.ItemID
}

// ImageTags теги изображений элемента
type ImageTags struct {
	Primary string `json:"Primary,omitempty" yaml:"primary,omitempty"`
	Thumb   string `json:"Thumb,omitempty" yaml:"thumb,omitempty"`
}

// MediaItem элемент медиатеки
type MediaItem struct {
	ImageTags          *ImageTags `json:"ImageTags,omitempty" yaml:"image_tags,omitempty"`
	ID                 string     `json:"Id" yaml:"id"`
	Name               string     `json:"Name" yaml:"name"`
	Type               string     `json:"Type" yaml:"type"`
	Overview           string     `json:"Overview,omitempty" yaml:"overview,omitempty"`
	OfficialRating     string     `json:"OfficialRating,omitempty" yaml:"official_rating,omitempty"`
	PremiereDate       string     `json:"PremiereDate,omitempty" yaml:"premiere_date,omitempty"`
	DateCreated        string     `json:"DateCreated,omitempty" yaml:"date_created,omitempty"`
	SeriesName         string     `json:"SeriesName,omitempty" yaml:"series_name,omitempty"`
	SeasonName         string     `json:"SeasonName,omitempty" yaml:"season_name,omitempty"`
	Genres             []string   `json:"Genres,omitempty" yaml:"genres,omitempty"`
	BackdropImageTags  []string   `json:"BackdropImageTags,omitempty" yaml:"backdrop_image_tags,omitempty"`
	CommunityRating    float64    `json:"CommunityRating,omitempty" yaml:"community_rating,omitempty"`
	RunTimeTicks       int64      `json:"RunTimeTicks,omitempty" yaml:"run_time_ticks,omitempty"`
	ProductionYear     int        `json:"ProductionYear,omitempty" yaml:"production_year,omitempty"`
	ChildCount         int        `json:"ChildCount,omitempty" yaml:"child_count,omitempty"`
	RecursiveItemCount int        `json:"RecursiveItemCount,omitempty" yaml:"recursive_item_count,omitempty"`
	IndexNumber        int        `json:"IndexNumber,omitempty" yaml:"index_number,omitempty"`
	ParentIndexNumber  int        `json:"ParentIndexNumber,omitempty" yaml:"parent_index_number,omitempty"`
}

// MediaItemsQuery фильтры списка элементов медиатеки
type MediaItemsQuery struct {
	ParentID  string `url:"parent_id,omitempty"`
	Type      string `url:"type,omitempty"`
	SortBy    string `url:"sort_by,omitempty"`
	SortOrder string `url:"sort_order,omitempty"`
	Search    string `url:"search,omitempty"`
	PageParams
}

// LatestMediaQuery параметры списка последних добавлений
type LatestMediaQuery struct {
	ParentID string `url:"parent_id,omitempty"`
	Limit    int    `url:"limit,omitempty"`
}
