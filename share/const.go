package share

// VERSION the site version
const VERSION = "1.4.2"

// PRVERSION the PR commit, replaced at build time: <commit>-<build time>
const PRVERSION = "DEV"

// BUILDNAME The name of the artifact
const BUILDNAME = "invoiceflow"

// PoweredBy the X-Powered-By header value
const PoweredBy = "invoiceflow/" + VERSION
