package geo

// Two squares: "AA" spans lon 0..10 lat 0..10, "BB" (a multipolygon with a
// Natural Earth style -99 code) spans lon 20..30 lat 0..10.
const testRegions = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"iso_a2": "AA", "name": "Alpha"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]}},
    {"type": "Feature", "properties": {"iso_a2": "-99", "iso_a2_eh": "BB", "NAME": "Beta"},
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[20,0],[30,0],[30,10],[20,10],[20,0]]]]}},
    {"type": "Feature", "properties": {"name": "No Code"},
     "geometry": {"type": "Polygon", "coordinates": [[[40,0],[50,0],[50,10],[40,10],[40,0]]]}}
  ]
}`
