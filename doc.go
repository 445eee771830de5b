/*
Package expense is a serverless backend for reviewing pending expenses kept in Google Sheets.

A cost center logs in against a user sheet and retrieves the expense records that are still waiting
for a receipt or acknowledgement, for itself and for any other cost centers granted to it in the
permission sheet.

The API is deployed as an AWS Lambda (or Netlify) function (cmd/pending-expense-api). The
pending-expense-app command line tool supports the following commands:

  - serve, to run the API as a local HTTP server
  - login, to verify a cost center login
  - get-data, to download the pending expenses visible to a cost center as a TSV file
  - authorise, to authorise access to the spreadsheets with an OAuth client
  - version, to display the current version
*/
package expense
