package model

// Store 门店，属于一个店主
type Store struct {
	BaseModel
	Name     string `gorm:"size:200;not null" json:"name"`
	Location string `gorm:"size:255" json:"location"`
	OwnerID  int64  `gorm:"index;not null" json:"owner_id"`

	// 关联：删除门店时级联删除客户、订单与操作员
	Customers []Customer `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"customers,omitempty"`
	Orders    []Order    `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
	StoreMan  *StoreMan  `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"storeman,omitempty"`
	Products  []Product  `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
}

func (Store) TableName() string {
	return "stores"
}

// Customer 客户，属于一个门店
type Customer struct {
	BaseModel
	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:100" json:"email"`
	Phone   string `gorm:"size:15;index" json:"phone"` // 同店内唯一（服务层校验）
	Address string `gorm:"size:255" json:"address"`
	StoreID int64  `gorm:"index;not null" json:"store_id"`

	// 关联：删除客户时级联删除其订单与咨询
	Orders    []Order   `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
	Inquiries []Inquiry `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"inquiries,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}

// Product 商品，属于一个门店；Price 为当前售价，下单时快照到订单项
type Product struct {
	BaseModel
	Name        string  `gorm:"size:200;not null" json:"name"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	Description string  `gorm:"size:500" json:"description"`
	ImagePath   string  `gorm:"size:255" json:"image_path"`
	StoreID     int64   `gorm:"index;not null" json:"store_id"`
}

func (Product) TableName() string {
	return "products"
}
