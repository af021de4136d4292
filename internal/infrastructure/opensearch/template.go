// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

const queryMemberSource = `{
  "from": {{ .From }},
  "size": {{ .Size }},
  "track_total_hits": true,
  "query": {
    "bool": {
      "filter": {{ .Filter | json }}
    }
  },
  "sort": [
    {"id": {"order": {{ .SortOrder | quote }}}}
  ]
}`
