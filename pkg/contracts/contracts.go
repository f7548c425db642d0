// Package contracts holds recorded YouTube Data API v3 responses that the
// client is tested against.
package contracts

// YouTubeSearchPage1 is the first page of a search.list response.
const YouTubeSearchPage1 = `{
  "kind": "youtube#searchListResponse",
  "etag": "q1",
  "nextPageToken": "CAUQAA",
  "regionCode": "US",
  "pageInfo": {"totalResults": 3, "resultsPerPage": 2},
  "items": [
    {
      "kind": "youtube#searchResult",
      "etag": "e1",
      "id": {"kind": "youtube#video", "videoId": "dQw4w9WgXcQ"},
      "snippet": {
        "publishedAt": "2023-03-01T04:30:00Z",
        "channelId": "UC3LD42rjj-Owtxsa6PwGU5Q",
        "title": "Streamlit in 5 minutes",
        "description": "Build a data app, quickly",
        "thumbnails": {"default": {"url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg", "width": 120, "height": 90}},
        "channelTitle": "Streamlit",
        "liveBroadcastContent": "none",
        "publishTime": "2023-03-01T04:30:00Z"
      }
    },
    {
      "kind": "youtube#searchResult",
      "etag": "e2",
      "id": {"kind": "youtube#video", "videoId": "9bZkp7q19f0"},
      "snippet": {
        "publishedAt": "2023-03-01T16:00:00Z",
        "channelId": "UCabc",
        "title": "Dashboards with Streamlit",
        "description": "",
        "thumbnails": {},
        "channelTitle": "Data Talks",
        "liveBroadcastContent": "none",
        "publishTime": "2023-03-01T16:00:00Z"
      }
    }
  ]
}`

// YouTubeSearchPage2 is the last page of the same search.
const YouTubeSearchPage2 = `{
  "kind": "youtube#searchListResponse",
  "etag": "q2",
  "prevPageToken": "CAUQAQ",
  "regionCode": "US",
  "pageInfo": {"totalResults": 3, "resultsPerPage": 2},
  "items": [
    {
      "kind": "youtube#searchResult",
      "etag": "e3",
      "id": {"kind": "youtube#video", "videoId": "kJQP7kiw5Fk"},
      "snippet": {
        "publishedAt": "2023-03-02T12:00:00Z",
        "channelId": "UCdef",
        "title": "Streamlit & Snowflake",
        "description": "Line one\nline two",
        "thumbnails": {},
        "channelTitle": "Snow Devs",
        "liveBroadcastContent": "none",
        "publishTime": "2023-03-02T12:00:00Z"
      }
    }
  ]
}`

// YouTubeQuotaExceeded is the error body returned once the daily quota is spent.
const YouTubeQuotaExceeded = `{
  "error": {
    "code": 403,
    "message": "The request cannot be completed because you have exceeded your <a href=\"/youtube/v3/getting-started#quota\">quota</a>.",
    "errors": [
      {
        "message": "The request cannot be completed because you have exceeded your quota.",
        "domain": "youtube.quota",
        "reason": "quotaExceeded"
      }
    ]
  }
}`

// YouTubeKeyInvalid is the error body returned for a bad API key.
const YouTubeKeyInvalid = `{
  "error": {
    "code": 400,
    "message": "API key not valid. Please pass a valid API key.",
    "errors": [
      {
        "message": "API key not valid. Please pass a valid API key.",
        "domain": "global",
        "reason": "badRequest"
      }
    ],
    "status": "INVALID_ARGUMENT"
  }
}`
