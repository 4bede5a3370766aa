package mysql

// Settings are stored as one JSON document per tenant. The document keeps
// whatever field set the writer produced; normalization into a totally
// defined value happens in the app layer on read.
const upsertSettingsSQL = `
INSERT INTO tenant_negotiation_settings
  (tenant_id, doc)
VALUES
  (?, ?)
ON DUPLICATE KEY UPDATE
  doc        = VALUES(doc),
  updated_at = CURRENT_TIMESTAMP
`

const getSettingsSQL = `
SELECT doc
FROM tenant_negotiation_settings
WHERE tenant_id = ?
`

const listTenantIDsSQL = `
SELECT tenant_id
FROM tenant_negotiation_settings
ORDER BY tenant_id
LIMIT ?
`

const insertSyncMissSQL = `
INSERT INTO sync_misses (tenant_id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  http_status = VALUES(http_status),
  reason      = VALUES(reason),
  seen_at     = CURRENT_TIMESTAMP
`
