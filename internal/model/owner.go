package model

// ==================== 角色常量 ====================

// 登录角色，OTP 登录只允许这两种
const (
	RoleOwner    = "owner"    // 店主（租户管理员）
	RoleStoreMan = "storeman" // 门店操作员
	RoleAdmin    = "admin"    // 平台管理员（密码登录，配置内置账号）
)

// ==================== Owner 店主 ====================

// Owner 店主（租户），拥有若干门店
type Owner struct {
	BaseModel
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100" json:"email"` // 可选，非空时全局唯一（服务层校验）
	Mobile   string `gorm:"size:15;uniqueIndex;not null" json:"mobile"`
	ShopName string `gorm:"size:200" json:"shop_name"`
	Address  string `gorm:"size:255" json:"address"`

	// 登录以 OTP 为准；注册时可选留存密码哈希（bcrypt），当前不用于登录
	PasswordHash string `gorm:"size:255" json:"-"`

	// 关联：删除店主时级联删除其所有门店
	Stores []Store `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"stores,omitempty"`
}

func (Owner) TableName() string {
	return "owners"
}

// ==================== StoreMan 门店操作员 ====================

// StoreMan 门店操作员，隶属于一个门店（每店至多一个）
type StoreMan struct {
	BaseModel
	Name         string `gorm:"size:100;not null" json:"name"`
	Mobile       string `gorm:"size:15;uniqueIndex;not null" json:"mobile"`
	PasswordHash string `gorm:"size:255" json:"-"` // 可选
	StoreID      int64  `gorm:"uniqueIndex;not null" json:"store_id"`
}

func (StoreMan) TableName() string {
	return "storemans"
}
