package site

import "html/template"

// The generated pages keep the layout the deployed site always had: a menu
// box with the state selector on the index, and one standalone page per
// state batch that the index loads into the content iframe.

const indexTemplateText = `<!DOCTYPE html>
<html lang="en">
<head>
<link rel="stylesheet" href="css/styles.css">
<script src="js/store.locator.js"></script>
<title>{{.Title}}</title>
</head>
<body>
<div id="menuBox">
<select name="stateSelector" id="stateSelector">
{{- range .Options}}
<option value="{{.Value}}">{{.Label}}</option>
{{- end}}
</select>
<button id="stateSelectorButton">Submit</button>
</div>
<div id="contentArea">
<iframe id="googleMapBox"></iframe>
</div>
</body>
</html>
`

const statePageTemplateText = `<link rel="stylesheet" href="css/styles.css">
<img src="{{.MapURL}}">
<p></p>
{{- if .RouteURL}}
<button>
<a href="{{.RouteURL}}" target="_new">Click Here For Optimized Route Between Stores Map</a>
</button>
<p></p>
{{- end}}
<table>
<tr><th class="knockout"></th>
{{- range .Stores}}
<td class="columnHeader"><div class="storeID">Store# {{.ID}}</div><div class="storeAddr">{{.FormattedAddress}}</div></td>
{{- end}}
</tr>
{{- range .Rows}}
<tr><td class="rowHeader"><div class="storeID">Store# {{.Origin.ID}}</div><div class="storeAddr">{{.Origin.FormattedAddress}}</div></td>
{{- range .Elements}}
<td class="data">Miles: {{.Distance}}<br>Hours: {{.Duration}}</td>
{{- end}}
</tr>
{{- end}}
</table>
`

// wiringScript is the script the index page loads. On click of the submit
// button it assigns the selector's current value to the iframe's src, which
// makes the browser load that state page into the content area.
const wiringScript = `window.onload = function () {
    document.getElementById("stateSelectorButton").onclick = function () {
        var selector = document.getElementById("stateSelector");
        document.getElementById("googleMapBox").src = selector.value;
    };
};
`

const stylesheet = `body {
    font-family: sans-serif;
}

#menuBox {
    padding: 8px;
}

#contentArea iframe {
    width: 100%;
    height: 860px;
    border: none;
}

table {
    border-collapse: collapse;
}

table td, table th {
    border: 1px solid #ccc;
    padding: 4px 8px;
    vertical-align: top;
}

th.knockout {
    border: none;
}

.columnHeader, .rowHeader {
    background-color: #eee;
}

.storeID {
    font-weight: bold;
}

.storeAddr {
    font-size: smaller;
}

td.data {
    text-align: right;
    white-space: nowrap;
}
`

var (
	indexTemplate     = template.Must(template.New("index").Parse(indexTemplateText))
	statePageTemplate = template.Must(template.New("state").Parse(statePageTemplateText))
)
