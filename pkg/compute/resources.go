package compute

import (
	"time"
)

// Server states reported by the API.
const (
	ServerStatusActive  = "ACTIVE"
	ServerStatusBuild   = "BUILD"
	ServerStatusError   = "ERROR"
	ServerStatusResize  = "RESIZE"
	ServerStatusShutoff = "SHUTOFF"
	ServerStatusDeleted = "DELETED"
	ServerStatusReboot  = "REBOOT"
	ServerStatusRebuild = "REBUILD"
	ServerStatusPaused  = "PAUSED"
	ServerStatusShelved = "SHELVED"
	ServerStatusUnknown = "UNKNOWN"
)

// Reboot types accepted by the reboot action.
const (
	RebootSoft = "SOFT"
	RebootHard = "HARD"
)

// Server represents a compute instance.
type Server struct {
	Resource

	Name             string               `json:"name"                        yaml:"name"`
	Status           string               `json:"status,omitempty"            yaml:"status,omitempty"`
	TenantID         string               `json:"tenant_id,omitempty"         yaml:"tenant_id,omitempty"`
	UserID           string               `json:"user_id,omitempty"           yaml:"user_id,omitempty"`
	HostID           string               `json:"host_id,omitempty"           yaml:"host_id,omitempty"`
	Created          time.Time            `json:"created,omitzero"            yaml:"created,omitempty"`
	Updated          time.Time            `json:"updated,omitzero"            yaml:"updated,omitempty"`
	Progress         int                  `json:"progress,omitempty"          yaml:"progress,omitempty"`
	KeyName          string               `json:"key_name,omitempty"          yaml:"key_name,omitempty"`
	AccessIPv4       string               `json:"access_ipv4,omitempty"       yaml:"access_ipv4,omitempty"`
	AccessIPv6       string               `json:"access_ipv6,omitempty"       yaml:"access_ipv6,omitempty"`
	AvailabilityZone string               `json:"availability_zone,omitempty" yaml:"availability_zone,omitempty"`
	Flavor           *ResourceRef         `json:"flavor,omitempty"            yaml:"flavor,omitempty"`
	Image            *ResourceRef         `json:"image,omitempty"             yaml:"image,omitempty"`
	Addresses        map[string][]Address `json:"addresses,omitempty"         yaml:"addresses,omitempty"`
	Metadata         Metadata             `json:"metadata,omitempty"          yaml:"metadata,omitempty"`
	TaskState        string               `json:"task_state,omitempty"        yaml:"task_state,omitempty"`
	PowerState       int                  `json:"power_state,omitempty"       yaml:"power_state,omitempty"`
	Fault            *ServerFault         `json:"fault,omitempty"             yaml:"fault,omitempty"`
}

// ResourceRef is a lightweight reference to another resource (flavor, image).
type ResourceRef struct {
	ID    string `json:"id"              yaml:"id"`
	Links []Link `json:"links,omitempty" yaml:"links,omitempty"`
}

// Address represents a single network address assigned to a server.
type Address struct {
	Addr    string `json:"addr"              yaml:"addr"`
	Version int    `json:"version"           yaml:"version"`
	Type    string `json:"type,omitempty"    yaml:"type,omitempty"`
	MACAddr string `json:"mac_addr,omitempty" yaml:"mac_addr,omitempty"`
}

// ServerFault describes the failure that moved a server into ERROR state.
type ServerFault struct {
	Code    int       `json:"code"              yaml:"code"`
	Message string    `json:"message"           yaml:"message"`
	Details string    `json:"details,omitempty" yaml:"details,omitempty"`
	Created time.Time `json:"created,omitzero"  yaml:"created,omitempty"`
}

// ServerCreateRequest represents a request to create a server.
type ServerCreateRequest struct {
	Name             string          `json:"name"`
	FlavorRef        string          `json:"flavor_ref"`
	ImageRef         string          `json:"image_ref,omitempty"`
	KeyName          string          `json:"key_name,omitempty"`
	AvailabilityZone string          `json:"availability_zone,omitempty"`
	UserData         string          `json:"user_data,omitempty"`
	Metadata         Metadata        `json:"metadata,omitempty"`
	Networks         []ServerNetwork `json:"networks,omitempty"`
	SecurityGroups   []string        `json:"security_groups,omitempty"`
}

// ServerNetwork selects a network attachment for server creation.
type ServerNetwork struct {
	UUID    string `json:"uuid,omitempty"`
	Port    string `json:"port,omitempty"`
	FixedIP string `json:"fixed_ip,omitempty"`
}

// ServerUpdateRequest represents a request to update a server.
type ServerUpdateRequest struct {
	Name       *string `json:"name,omitempty"`
	AccessIPv4 *string `json:"access_ipv4,omitempty"`
	AccessIPv6 *string `json:"access_ipv6,omitempty"`
}

// ServerResizeRequest selects the target flavor for a resize action.
type ServerResizeRequest struct {
	FlavorRef string `json:"flavor_ref"`
}

// ServerRebuildRequest selects the source image for a rebuild action.
type ServerRebuildRequest struct {
	ImageRef  string   `json:"image_ref"`
	Name      string   `json:"name,omitempty"`
	AdminPass string   `json:"admin_pass,omitempty"`
	Metadata  Metadata `json:"metadata,omitempty"`
}

// Flavor represents a hardware configuration for a server.
type Flavor struct {
	Resource

	Name       string  `json:"name"                  yaml:"name"`
	RAM        int     `json:"ram"                   yaml:"ram"`
	VCPUs      int     `json:"vcpus"                 yaml:"vcpus"`
	Disk       int     `json:"disk"                  yaml:"disk"`
	Ephemeral  int     `json:"ephemeral,omitempty"   yaml:"ephemeral,omitempty"`
	Swap       int     `json:"swap,omitempty"        yaml:"swap,omitempty"`
	RxTxFactor float64 `json:"rxtx_factor,omitempty" yaml:"rxtx_factor,omitempty"`
	IsPublic   *bool   `json:"is_public,omitempty"   yaml:"is_public,omitempty"`
}

// FlavorCreateRequest represents a request to create a flavor.
type FlavorCreateRequest struct {
	Name       string  `json:"name"`
	RAM        int     `json:"ram"`
	VCPUs      int     `json:"vcpus"`
	Disk       int     `json:"disk"`
	ID         string  `json:"id,omitempty"`
	Ephemeral  int     `json:"ephemeral,omitempty"`
	Swap       int     `json:"swap,omitempty"`
	RxTxFactor float64 `json:"rxtx_factor,omitempty"`
	IsPublic   *bool   `json:"is_public,omitempty"`
}

// Image represents a bootable machine image.
type Image struct {
	Resource

	Name     string    `json:"name"               yaml:"name"`
	Status   string    `json:"status,omitempty"   yaml:"status,omitempty"`
	MinDisk  int       `json:"min_disk,omitempty" yaml:"min_disk,omitempty"`
	MinRAM   int       `json:"min_ram,omitempty"  yaml:"min_ram,omitempty"`
	Size     int64     `json:"size,omitempty"     yaml:"size,omitempty"`
	Progress int       `json:"progress,omitempty" yaml:"progress,omitempty"`
	Created  time.Time `json:"created,omitzero"   yaml:"created,omitempty"`
	Updated  time.Time `json:"updated,omitzero"   yaml:"updated,omitempty"`
	Metadata Metadata  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Keypair represents an SSH keypair registered with the provider.
type Keypair struct {
	Name        string    `json:"name"                  yaml:"name"`
	PublicKey   string    `json:"public_key"            yaml:"public_key"`
	Fingerprint string    `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Type        string    `json:"type,omitempty"        yaml:"type,omitempty"`
	UserID      string    `json:"user_id,omitempty"     yaml:"user_id,omitempty"`
	Created     time.Time `json:"created_at,omitzero"   yaml:"created_at,omitempty"`

	// PrivateKey is only present in the response to a create request that
	// asked the provider to generate the keypair.
	PrivateKey string `json:"private_key,omitempty" yaml:"private_key,omitempty"`
}

// KeypairCreateRequest represents a request to create or import a keypair.
// Leave PublicKey empty to have the provider generate one.
type KeypairCreateRequest struct {
	Name      string `json:"name"`
	PublicKey string `json:"public_key,omitempty"`
	Type      string `json:"type,omitempty"`
}

// Limits represents the tenant's absolute and rate limits.
type Limits struct {
	Absolute AbsoluteLimits `json:"absolute" yaml:"absolute"`
	Rate     []RateLimit    `json:"rate"     yaml:"rate"`
}

// AbsoluteLimits represents quota ceilings and current usage.
type AbsoluteLimits struct {
	MaxTotalCores       int `json:"max_total_cores"        yaml:"max_total_cores"`
	MaxTotalInstances   int `json:"max_total_instances"    yaml:"max_total_instances"`
	MaxTotalRAMSize     int `json:"max_total_ram_size"     yaml:"max_total_ram_size"`
	MaxTotalKeypairs    int `json:"max_total_keypairs"     yaml:"max_total_keypairs"`
	MaxServerMeta       int `json:"max_server_meta"        yaml:"max_server_meta"`
	MaxSecurityGroups   int `json:"max_security_groups"    yaml:"max_security_groups"`
	TotalCoresUsed      int `json:"total_cores_used"       yaml:"total_cores_used"`
	TotalInstancesUsed  int `json:"total_instances_used"   yaml:"total_instances_used"`
	TotalRAMUsed        int `json:"total_ram_used"         yaml:"total_ram_used"`
	TotalSecurityGroups int `json:"total_security_groups_used" yaml:"total_security_groups_used"`
}

// RateLimit represents the rate limits applied to one URI pattern.
type RateLimit struct {
	Regex string            `json:"regex" yaml:"regex"`
	URI   string            `json:"uri"   yaml:"uri"`
	Limit []RateLimitDetail `json:"limit" yaml:"limit"`
}

// RateLimitDetail represents one verb's limit within a RateLimit.
type RateLimitDetail struct {
	Verb          string    `json:"verb"                    yaml:"verb"`
	Value         int       `json:"value"                   yaml:"value"`
	Remaining     int       `json:"remaining"               yaml:"remaining"`
	Unit          string    `json:"unit"                    yaml:"unit"`
	NextAvailable time.Time `json:"next_available,omitzero" yaml:"next_available,omitempty"`
}

// Hypervisor represents a compute host.
type Hypervisor struct {
	Resource

	Hostname          string             `json:"hypervisor_hostname"       yaml:"hypervisor_hostname"`
	State             string             `json:"state,omitempty"           yaml:"state,omitempty"`
	Status            string             `json:"status,omitempty"          yaml:"status,omitempty"`
	HypervisorType    string             `json:"hypervisor_type,omitempty" yaml:"hypervisor_type,omitempty"`
	HypervisorVersion int                `json:"hypervisor_version,omitempty" yaml:"hypervisor_version,omitempty"`
	HostIP            string             `json:"host_ip,omitempty"         yaml:"host_ip,omitempty"`
	VCPUs             int                `json:"vcpus"                     yaml:"vcpus"`
	VCPUsUsed         int                `json:"vcpus_used"                yaml:"vcpus_used"`
	MemoryMB          int                `json:"memory_mb"                 yaml:"memory_mb"`
	MemoryMBUsed      int                `json:"memory_mb_used"            yaml:"memory_mb_used"`
	LocalGB           int                `json:"local_gb"                  yaml:"local_gb"`
	LocalGBUsed       int                `json:"local_gb_used"             yaml:"local_gb_used"`
	FreeDiskGB        int                `json:"free_disk_gb"              yaml:"free_disk_gb"`
	FreeRAMMB         int                `json:"free_ram_mb"               yaml:"free_ram_mb"`
	RunningVMs        int                `json:"running_vms"               yaml:"running_vms"`
	CurrentWorkload   int                `json:"current_workload"          yaml:"current_workload"`
	Service           *HypervisorService `json:"service,omitempty"         yaml:"service,omitempty"`
}

// HypervisorService identifies the compute service running on a hypervisor.
type HypervisorService struct {
	ID             string `json:"id"                        yaml:"id"`
	Host           string `json:"host"                      yaml:"host"`
	DisabledReason string `json:"disabled_reason,omitempty" yaml:"disabled_reason,omitempty"`
}

// HypervisorStatistics represents usage aggregated over all hypervisors.
type HypervisorStatistics struct {
	Count           int `json:"count"            yaml:"count"`
	VCPUs           int `json:"vcpus"            yaml:"vcpus"`
	VCPUsUsed       int `json:"vcpus_used"       yaml:"vcpus_used"`
	MemoryMB        int `json:"memory_mb"        yaml:"memory_mb"`
	MemoryMBUsed    int `json:"memory_mb_used"   yaml:"memory_mb_used"`
	LocalGB         int `json:"local_gb"         yaml:"local_gb"`
	LocalGBUsed     int `json:"local_gb_used"    yaml:"local_gb_used"`
	FreeDiskGB      int `json:"free_disk_gb"     yaml:"free_disk_gb"`
	FreeRAMMB       int `json:"free_ram_mb"      yaml:"free_ram_mb"`
	RunningVMs      int `json:"running_vms"      yaml:"running_vms"`
	CurrentWorkload int `json:"current_workload" yaml:"current_workload"`
}
