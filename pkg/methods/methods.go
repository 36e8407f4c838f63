// Package methods enumerates the remote procedure names of the DomRobot
// API, grouped by resource area. The names are opaque literals passed
// straight to the client's Call; the client performs no per-method
// validation or shaping of parameters.
package methods

// Account management and session handling.
const (
	AccountAddRole        = "account.addrole"
	AccountChangePassword = "account.changepassword"
	AccountCheck          = "account.check"
	AccountCreate         = "account.create"
	AccountDelete         = "account.delete"
	AccountGetRoles       = "account.getroles"
	AccountInfo           = "account.info"
	AccountLogin          = "account.login"
	AccountLogout         = "account.logout"
	AccountRemoveRole     = "account.removerole"
	AccountUnlock         = "account.unlock"
	AccountUpdate         = "account.update"
)

// Accounting: balances, invoices, and statements.
const (
	AccountingAccountBalance = "accounting.accountbalance"
	AccountingCreditLogByID  = "accounting.creditlogbyid"
	AccountingGetInvoice     = "accounting.getinvoice"
	AccountingGetReceipt     = "accounting.getreceipt"
	AccountingGetStatement   = "accounting.getstatement"
	AccountingListInvoices   = "accounting.listinvoices"
	AccountingLockedFunds    = "accounting.lockedfunds"
	AccountingRefund         = "accounting.refund"
)

// Domain applications for launch phases and premium registrations.
const (
	ApplicationCheck  = "application.check"
	ApplicationCreate = "application.create"
	ApplicationDelete = "application.delete"
	ApplicationInfo   = "application.info"
	ApplicationList   = "application.list"
	ApplicationUpdate = "application.update"
)

// Certificate authority metadata.
const (
	AuthInfoCACreate = "authinfoca.create"
	AuthInfoCADelete = "authinfoca.delete"
	AuthInfoCAInfo   = "authinfoca.info"
	AuthInfoCAList   = "authinfoca.list"
)

// SSL/TLS certificate lifecycle.
const (
	CertificateCancel       = "certificate.cancel"
	CertificateCreate       = "certificate.create"
	CertificateInfo         = "certificate.info"
	CertificateList         = "certificate.list"
	CertificateListProducts = "certificate.listproducts"
	CertificateLog          = "certificate.log"
	CertificateRenew        = "certificate.renew"
	CertificateSetAutorenew = "certificate.setautorenew"
	CertificateUpdateOrder  = "certificate.updateorder"
)

// Contact handles referenced by domains.
const (
	ContactCreate           = "contact.create"
	ContactDelete           = "contact.delete"
	ContactInfo             = "contact.info"
	ContactList             = "contact.list"
	ContactLog              = "contact.log"
	ContactSendVerification = "contact.sendcontactverification"
	ContactUpdate           = "contact.update"
)

// Customer master data.
const (
	CustomerDelete = "customer.delete"
	CustomerInfo   = "customer.info"
	CustomerUpdate = "customer.update"
)

// DNSSEC key management.
const (
	DNSSECAddDNSKey    = "dnssec.adddnskey"
	DNSSECDeleteAll    = "dnssec.deleteall"
	DNSSECDeleteDNSKey = "dnssec.deletednskey"
	DNSSECDisable      = "dnssec.disablednssec"
	DNSSECEnable       = "dnssec.enablednssec"
	DNSSECInfo         = "dnssec.info"
	DNSSECListKeys     = "dnssec.listkeys"
)

// Domain registration, transfer, and maintenance.
const (
	DomainCheck          = "domain.check"
	DomainCreate         = "domain.create"
	DomainDelete         = "domain.delete"
	DomainGetPrices      = "domain.getprices"
	DomainGetPromos      = "domain.getpromos"
	DomainGetRules       = "domain.getrules"
	DomainGetTLDGroups   = "domain.gettldgroups"
	DomainInfo           = "domain.info"
	DomainList           = "domain.list"
	DomainLog            = "domain.log"
	DomainPush           = "domain.push"
	DomainRenew          = "domain.renew"
	DomainRestore        = "domain.restore"
	DomainSetPassword    = "domain.setpassword"
	DomainStats          = "domain.stats"
	DomainTrade          = "domain.trade"
	DomainTransfer       = "domain.transfer"
	DomainTransferCancel = "domain.transfercancel"
	DomainTransferOut    = "domain.transferout"
	DomainUpdate         = "domain.update"
	DomainWhois          = "domain.whois"
)

// Dynamic DNS hosts.
const (
	DynDNSCheck      = "dyndns.check"
	DynDNSCreate     = "dyndns.create"
	DynDNSDelete     = "dyndns.delete"
	DynDNSInfo       = "dyndns.info"
	DynDNSList       = "dyndns.list"
	DynDNSLog        = "dyndns.log"
	DynDNSUpdateIP   = "dyndns.updateip"
	DynDNSUpdateMain = "dyndns.update"
)

// Dynamic DNS subscription management.
const (
	DynDNSSubscriptionCreate = "dyndnssubscription.create"
	DynDNSSubscriptionDelete = "dyndnssubscription.delete"
	DynDNSSubscriptionInfo   = "dyndnssubscription.info"
	DynDNSSubscriptionList   = "dyndnssubscription.list"
)

// Glue record hosts.
const (
	HostCreate = "host.create"
	HostDelete = "host.delete"
	HostInfo   = "host.info"
	HostList   = "host.list"
	HostUpdate = "host.update"
)

// Webhosting products.
const (
	HostingCancel       = "hosting.cancel"
	HostingControlPanel = "hosting.controlpanel"
	HostingCreate       = "hosting.create"
	HostingGetPrices    = "hosting.getprices"
	HostingInfo         = "hosting.info"
	HostingList         = "hosting.list"
	HostingUnblock      = "hosting.unblock"
	HostingUpdatePeriod = "hosting.updateperiod"
)

// Polling queue for asynchronous notifications.
const (
	MessageAck  = "message.ack"
	MessageInfo = "message.info"
	MessageList = "message.list"
)

// Nameserver zones and resource records.
const (
	NameserverCheck        = "nameserver.check"
	NameserverClone        = "nameserver.clone"
	NameserverCreate       = "nameserver.create"
	NameserverCreateRecord = "nameserver.createrecord"
	NameserverDelete       = "nameserver.delete"
	NameserverDeleteRecord = "nameserver.deleterecord"
	NameserverExport       = "nameserver.export"
	NameserverInfo         = "nameserver.info"
	NameserverList         = "nameserver.list"
	NameserverUpdate       = "nameserver.update"
	NameserverUpdateRecord = "nameserver.updaterecord"
)

// Reusable nameserver sets.
const (
	NameserverSetCreate = "nameserverset.create"
	NameserverSetDelete = "nameserverset.delete"
	NameserverSetInfo   = "nameserverset.info"
	NameserverSetList   = "nameserverset.list"
	NameserverSetUpdate = "nameserverset.update"
)

// News feed of the registrar.
const (
	NewsList = "news.list"
)

// NIC handle listings across registries.
const (
	NicHandleList = "nichandle.list"
)

// PDF document retrieval.
const (
	PDFGet = "pdf.get"
)

// Tags for grouping domains.
const (
	TagCreate = "tag.create"
	TagDelete = "tag.delete"
	TagInfo   = "tag.info"
	TagList   = "tag.list"
	TagUpdate = "tag.update"
)
