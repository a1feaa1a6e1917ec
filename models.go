package tenantauth

import (
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/uptrace/bun"
)

// User is the identity record behind a tenant account. Usernames are
// derived at registration and unique across all users; the password hash
// never leaves the store.
type User struct {
	bun.BaseModel      `bun:"table:users,alias:usr"`
	ID                 uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FullName           string     `bun:"full_name" json:"full_name,omitempty"`
	Email              string     `bun:"email,notnull" json:"email,omitempty"`
	Username           string     `bun:"username,notnull,unique" json:"username,omitempty"`
	PasswordHash       string     `bun:"password_hash" json:"-"`
	MustChangePassword bool       `bun:"must_change_password,notnull" json:"must_change_password"`
	CreatedAt          *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt          *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt          *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// BusinessProfile carries the tenant's business metadata, keyed by the
// owning user. The credential core treats these fields as opaque; they are
// persisted verbatim as supplied at registration.
type BusinessProfile struct {
	bun.BaseModel   `bun:"table:business_profiles,alias:biz"`
	ID              uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID          uuid.UUID  `bun:"user_id,notnull,unique,type:uuid" json:"user_id,omitempty"`
	User            *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	LogoImg         string     `bun:"logo_img" json:"logoImg,omitempty"`
	TenantNameTH    string     `bun:"tenant_name_th" json:"tenantNameTh,omitempty"`
	TenantNameEN    string     `bun:"tenant_name_en" json:"tenantNameEn,omitempty"`
	TenantTaxID     string     `bun:"tenant_tax_id" json:"tenantTaxId,omitempty"`
	BranchCode      string     `bun:"branch_code" json:"branchCode,omitempty"`
	BranchNameTH    string     `bun:"branch_name_th" json:"branchNameTh,omitempty"`
	BranchNameEN    string     `bun:"branch_name_en" json:"branchNameEn,omitempty"`
	TenantTel       string     `bun:"tenant_tel" json:"tenantTel,omitempty"`
	BuildingNo      string     `bun:"building_no" json:"buildingNo,omitempty"`
	AddressDetailTH string     `bun:"address_detail_th" json:"addressDetailTh,omitempty"`
	AddressDetailEN string     `bun:"address_detail_en" json:"addressDetailEn,omitempty"`
	Province        string     `bun:"province" json:"province,omitempty"`
	District        string     `bun:"district" json:"district,omitempty"`
	Subdistrict     string     `bun:"subdistrict" json:"subdistrict,omitempty"`
	ZipCode         string     `bun:"zip_code" json:"zipCode,omitempty"`
	CreatedAt       *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt       *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt       *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// DefaultPhoneRegion is used when the tenant phone number carries no
// country prefix. The registration flow serves Thai businesses.
var DefaultPhoneRegion = "TH"

// NormalizePhone rewrites TenantTel into E.164 when it parses as a phone
// number for DefaultPhoneRegion; unparseable values are stored verbatim.
func (b *BusinessProfile) NormalizePhone() {
	if b.TenantTel == "" {
		return
	}

	num, err := phonenumbers.Parse(b.TenantTel, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return
	}

	b.TenantTel = phonenumbers.Format(num, phonenumbers.E164)
}
